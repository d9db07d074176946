package dto

// ErrorResponse cuerpo de error HTTP.
// Redirect indica a dónde debe ir el cliente (login, inicio); Fields e Input se usan para
// redibujar un formulario inválido con los valores enviados.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Input    interface{}       `json:"input,omitempty"`
}

// ResultResponse respuesta de una operación que guarda o elimina: registro, mensaje y destino.
type ResultResponse struct {
	Data     interface{} `json:"data,omitempty"`
	Message  string      `json:"message"`
	Redirect string      `json:"redirect,omitempty"`
}

// DeleteConfirmResponse pantalla de confirmación previa a un borrado.
type DeleteConfirmResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Action  string      `json:"action"` // ruta POST que confirma el borrado
}

// ListResponse listado sin paginar.
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}
