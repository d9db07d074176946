// seed genera un script SQL para poblar el catálogo (categorías, proveedores y productos)
// a partir de un CSV y, opcionalmente, el superusuario inicial.
//
// Uso: go run ./cmd/seed -csv catalogo.csv [-encoding iso-8859-1] [-out seed.sql]
//
//	[-admin-user admin -admin-password secreto]
//
// Columnas del CSV (con encabezado):
//
//	categoria,producto,descripcion,precio,stock,proveedor,telefono_proveedor
//
// Los IDs se derivan del nombre (UUID v5), así que ejecutar el script dos veces no duplica filas.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// namespace fijo para los UUID v5 del seed.
var namespace = uuid.MustParse("6f1c1f3e-2a43-4f0e-9d8e-5b7a1c2d3e4f")

var columns = []string{"categoria", "producto", "descripcion", "precio", "stock", "proveedor", "telefono_proveedor"}

type catalogRow struct {
	Category      string
	Product       string
	Description   string
	Price         decimal.Decimal
	Stock         int
	Supplier      string
	SupplierPhone string
}

type superuserSeed struct {
	Username     string
	PasswordHash string
}

func main() {
	csvPath := flag.String("csv", "catalogo.csv", "ruta del CSV del catálogo")
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8 o iso-8859-1")
	outPath := flag.String("out", "seed.sql", "script SQL de salida")
	adminUser := flag.String("admin-user", "", "usuario del superusuario (opcional)")
	adminPassword := flag.String("admin-password", "", "contraseña del superusuario")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readCatalog(f, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var admin *superuserSeed
	if *adminUser != "" {
		if *adminPassword == "" {
			fmt.Fprintln(os.Stderr, "-admin-password es obligatorio con -admin-user")
			os.Exit(1)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
			os.Exit(1)
		}
		admin = &superuserSeed{Username: strings.ToLower(strings.TrimSpace(*adminUser)), PasswordHash: string(hash)}
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, rows, admin, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", *outPath, len(rows))
}

// readCatalog decodifica el CSV. Con encoding iso-8859-1 el contenido se transcodifica a UTF-8.
func readCatalog(r io.Reader, encoding string) ([]catalogRow, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	for i, col := range columns {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")), col) {
			return nil, fmt.Errorf("encabezado: columna %d debe ser %q", i+1, col)
		}
	}

	var rows []catalogRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (catalogRow, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := catalogRow{
		Category:      rec[0],
		Product:       rec[1],
		Description:   rec[2],
		Supplier:      rec[5],
		SupplierPhone: rec[6],
	}
	if row.Category == "" || row.Product == "" {
		return row, fmt.Errorf("categoria y producto son obligatorios")
	}
	price, err := decimal.NewFromString(rec[3])
	if err != nil || price.IsNegative() || !price.Equal(price.Round(2)) {
		return row, fmt.Errorf("precio inválido %q", rec[3])
	}
	row.Price = price
	if rec[4] != "" {
		stock, err := strconv.Atoi(rec[4])
		if err != nil || stock < 0 {
			return row, fmt.Errorf("stock inválido %q", rec[4])
		}
		row.Stock = stock
	}
	if row.Supplier != "" && row.SupplierPhone == "" {
		return row, fmt.Errorf("el proveedor %q no tiene teléfono", row.Supplier)
	}
	return row, nil
}

// writeSeed escribe el script: superusuario, categorías, proveedores y productos, en ese orden.
func writeSeed(w io.Writer, rows []catalogRow, admin *superuserSeed, now time.Time) error {
	var b strings.Builder
	b.WriteString("-- Seed del catálogo de la tienda\n")
	fmt.Fprintf(&b, "-- Generado el %s\n\nBEGIN;\n\n", now.UTC().Format(time.RFC3339))

	if admin != nil {
		userID := seedID("user", admin.Username)
		b.WriteString("-- 1. Superusuario\n")
		fmt.Fprintf(&b, "INSERT INTO users (id, username, password_hash, is_superuser, is_active)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', TRUE, TRUE)\n", userID, escapeSQL(admin.Username), escapeSQL(admin.PasswordHash))
		b.WriteString("ON CONFLICT (username) DO NOTHING;\n")
		fmt.Fprintf(&b, "INSERT INTO profiles (id, user_id, role)\n")
		fmt.Fprintf(&b, "SELECT '%s', id, 'administrador' FROM users WHERE username = '%s'\n",
			seedID("profile", admin.Username), escapeSQL(admin.Username))
		b.WriteString("ON CONFLICT (user_id) DO NOTHING;\n\n")
	}

	categories := make(map[string]struct{})
	suppliers := make(map[string]string)
	for _, r := range rows {
		categories[r.Category] = struct{}{}
		if r.Supplier != "" {
			suppliers[r.Supplier] = r.SupplierPhone
		}
	}

	if len(categories) > 0 {
		b.WriteString("-- 2. Categorías\n")
		for _, name := range sortedKeys(categories) {
			fmt.Fprintf(&b, "INSERT INTO categories (id, name) VALUES ('%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
				seedID("category", name), escapeSQL(name))
		}
		b.WriteString("\n")
	}

	if len(suppliers) > 0 {
		b.WriteString("-- 3. Proveedores\n")
		names := make([]string, 0, len(suppliers))
		for name := range suppliers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "INSERT INTO suppliers (id, name, phone) VALUES ('%s', '%s', '%s') ON CONFLICT (id) DO NOTHING;\n",
				seedID("supplier", name), escapeSQL(name), escapeSQL(suppliers[name]))
		}
		b.WriteString("\n")
	}

	if len(rows) > 0 {
		b.WriteString("-- 4. Productos\n")
		for _, r := range rows {
			supplier := "NULL"
			if r.Supplier != "" {
				supplier = "'" + seedID("supplier", r.Supplier).String() + "'"
			}
			fmt.Fprintf(&b, "INSERT INTO products (id, name, description, price, stock, category_id, supplier_id)\n")
			fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %s, %d, '%s', %s)\n",
				seedID("product", r.Category+"/"+r.Product), escapeSQL(r.Product), escapeSQL(r.Description),
				r.Price.StringFixed(2), r.Stock, seedID("category", r.Category), supplier)
			b.WriteString("ON CONFLICT (id) DO UPDATE SET price = EXCLUDED.price, stock = EXCLUDED.stock;\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func seedID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(kind+":"+strings.ToLower(name)))
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
