// Package docs registra el documento Swagger que sirve /swagger. Se
// mantiene a mano en línea con las anotaciones godoc de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "description": "Crea el usuario y devuelve un token en el primer nivel de la respuesta.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "parameters": [
                    {
                        "description": "Datos del usuario",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/users.CreateInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.sessionResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {
                        "description": "Credenciales",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Acepta un token vigente o vencido dentro de la ventana de renovación. El token anterior queda revocado.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Renovar token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/appointments/{id}/alerts/email": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Enviar recordatorio por correo",
                "parameters": [
                    {"type": "integer", "description": "ID de la cita", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "400": {"description": "canal deshabilitado o cliente sin correo", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/pet-histories": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Acepta JSON o multipart/form-data. En multipart los adjuntos van en files o files[] (2048 KB cada uno). history_code se genera como HM-00001, HM-00002, ...",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pet-histories"],
                "summary": "Crear historia clínica",
                "parameters": [
                    {
                        "description": "Datos de la historia; user_id por defecto es el usuario autenticado",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pethistories.Input"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/pet-histories/{historyID}/files": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pet-histories"],
                "summary": "Adjuntar archivo a una historia clínica",
                "parameters": [
                    {"type": "integer", "description": "ID de la historia", "name": "historyID", "in": "path", "required": true},
                    {"type": "file", "description": "Archivo de hasta 2048 KB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/pets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Devuelve las mascotas con especie, raza y dueño resueltos. Filtro opcional por cliente.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "parameters": [
                    {"type": "integer", "description": "ID del cliente", "name": "clients_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Si no se envía petCode se genera uno con el formato PET-XXXXXXXX.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {
                        "description": "Datos de la mascota; petBirthDate en formato YYYY-MM-DD",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pets.CreateInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "422": {"description": "errores de validación por campo", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        },
        "/pets/{id}/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "description": "Reemplaza la foto actual. jpeg, png o gif de hasta 2048 KB; el tipo se detecta por contenido.",
                "tags": ["pets"],
                "summary": "Subir foto de la mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Imagen", "name": "petPhoto", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.Envelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "auth.LoginInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.sessionResponse": {
            "type": "object",
            "properties": {
                "expires_in": {"type": "integer"},
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/users.UserResponse"}
            }
        },
        "httpx.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "errors": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                },
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "pethistories.Input": {
            "type": "object",
            "properties": {
                "history_date": {"type": "string"},
                "history_diagnosis": {"type": "string"},
                "history_reason": {"type": "string"},
                "history_symptoms": {"type": "string"},
                "history_time": {"type": "string"},
                "history_treatment": {"type": "string"},
                "pet_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "pets.CreateInput": {
            "type": "object",
            "properties": {
                "breeds_id": {"type": "integer"},
                "clients_id": {"type": "integer"},
                "petAdditional": {"type": "string"},
                "petBirthDate": {"type": "string"},
                "petCode": {"type": "string"},
                "petColor": {"type": "string"},
                "petGender": {"type": "string"},
                "petName": {"type": "string"},
                "petWeight": {"type": "string"},
                "species_id": {"type": "integer"}
            }
        },
        "users.CreateInput": {
            "type": "object",
            "properties": {
                "doc": {"type": "string"},
                "email": {"type": "string"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "password_confirmation": {"type": "string"},
                "phone": {"type": "string"},
                "privilege": {"type": "string"},
                "sex": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "users.UserResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "doc": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "photo": {"type": "string"},
                "privilege": {"type": "string"},
                "sex": {"type": "string"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo queda exportado por si hay que ajustar host o versión al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Clinic API",
	Description:      "API REST de la clínica veterinaria: clientes, mascotas, citas e historias clínicas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
