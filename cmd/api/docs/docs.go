// Package docs is generated by swag from the godoc annotations in cmd/api and
// internal/handlers. Regenerate with: swag init -g cmd/api/main.go -o cmd/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Name, version and where to find the interactive documentation.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "API info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIInfoResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the service as healthy. The language model is checked once at start-up, not per call.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/documents/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Stores one file sent as multipart/form-data. Allowed types: .pdf, .xlsx, .xls, .docx, .doc, .csv.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Documents"],
                "summary": "Upload a financial document",
                "parameters": [
                    {"type": "file", "description": "The document to store", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Stored document metadata", "schema": {"$ref": "#/definitions/api.UploadResponse"}},
                    "400": {"description": "Missing file, bad name or unsupported type", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Storage error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/documents/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every stored document, newest first, with a count per type.",
                "produces": ["application/json"],
                "tags": ["Documents"],
                "summary": "List stored documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DocumentListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/analyze/summarize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Extracts the text of a stored document and asks the language model for a structured financial summary.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Summarize a stored document",
                "parameters": [
                    {"description": "Stored file name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SummarizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SummarizeResponse"}},
                    "400": {"description": "Bad request or no extractable text", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Document not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "415": {"description": "Format cannot be analysed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "422": {"description": "Document could not be read", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "Language model failure", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/analyze/compare": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Asks the language model for the differences between two stored documents.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Compare two stored documents",
                "parameters": [
                    {"description": "Stored file names", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CompareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.CompareResponse"}},
                    "400": {"description": "Bad request or no extractable text", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Document not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "415": {"description": "Format cannot be analysed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "422": {"description": "Document could not be read", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "Language model failure", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIInfoResponse": {
            "type": "object",
            "properties": {
                "docs": {"type": "string", "example": "/docs"},
                "name": {"type": "string", "example": "Financial Assistant"},
                "status": {"type": "string", "example": "operational"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "llm_model": {"type": "string", "example": "llama-3.3-70b-versatile"},
                "llm_provider": {"type": "string", "example": "groq"},
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string"},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "api.DocumentResponse": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string", "example": "application/pdf"},
                "extension": {"type": "string", "example": ".pdf"},
                "id": {"type": "string"},
                "original_name": {"type": "string", "example": "aapl-20250628.pdf"},
                "path": {"type": "string", "example": "uploads/raw/20251114_155218_aapl-20250628.pdf"},
                "sha256": {"type": "string"},
                "size_bytes": {"type": "integer", "example": 482113},
                "stored_name": {"type": "string", "example": "20251114_155218_aapl-20250628.pdf"},
                "type": {"type": "string", "example": "PDF"},
                "uploaded_at": {"type": "string"}
            }
        },
        "api.UploadResponse": {
            "type": "object",
            "properties": {
                "document": {"$ref": "#/definitions/api.DocumentResponse"},
                "message": {"type": "string", "example": "File uploaded successfully"}
            }
        },
        "api.DocumentListResponse": {
            "type": "object",
            "properties": {
                "by_type": {"type": "object", "additionalProperties": {"type": "integer"}},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/api.DocumentResponse"}},
                "total": {"type": "integer", "example": 2}
            }
        },
        "api.SummarizeRequest": {
            "type": "object",
            "required": ["filename"],
            "properties": {
                "filename": {"type": "string", "example": "20251114_155218_aapl-20250628.pdf"}
            }
        },
        "api.CompareRequest": {
            "type": "object",
            "required": ["first_filename", "second_filename"],
            "properties": {
                "first_filename": {"type": "string"},
                "second_filename": {"type": "string"}
            }
        },
        "api.SummarizeResponse": {
            "type": "object",
            "properties": {
                "company": {"type": "string", "example": "AAPL"},
                "filename": {"type": "string"},
                "model_used": {"type": "string"},
                "original_length": {"type": "integer"},
                "summary": {"type": "string"},
                "summary_html": {"type": "string"},
                "summary_length": {"type": "integer"},
                "truncated": {"type": "boolean"},
                "year": {"type": "integer", "example": 2025}
            }
        },
        "api.CompareResponse": {
            "type": "object",
            "properties": {
                "comparison": {"type": "string"},
                "comparison_html": {"type": "string"},
                "first_filename": {"type": "string"},
                "model_used": {"type": "string"},
                "second_filename": {"type": "string"}
            }
        },
        "api.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "message": {"type": "string"},
                "trace_id": {"type": "string"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/api.ErrorBody"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Financial Assistant API",
	Description:      "Upload financial reports and get structured summaries and comparisons from a language model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
