// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/llm/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Language model health",
                "responses": {"200": {"description": "Model status", "schema": {"$ref": "#/definitions/minutes.HealthStatus"}}}
            }
        },
        "/summaries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "List summaries",
                "parameters": [
                    {"type": "string", "description": "Title search", "name": "search", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Summaries"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Summarize a transcript",
                "parameters": [
                    {"description": "Transcript to summarize", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/summary.CreateSummaryRequest"}}
                ],
                "responses": {"200": {"description": "Summary created"}, "400": {"description": "Transcript is required"}}
            }
        },
        "/summaries/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Get a summary",
                "parameters": [{"type": "string", "description": "Summary ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Summary"}, "404": {"description": "Summary not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Delete a summary",
                "parameters": [{"type": "string", "description": "Summary ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Summary deleted"}, "404": {"description": "Summary not found"}}
            }
        },
        "/summaries/{id}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Export a summary",
                "parameters": [{"type": "string", "description": "Summary ID (UUID)", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Presigned URL"}, "409": {"description": "Summary has no archived copy"}, "500": {"description": "Presigning failed"}, "503": {"description": "Archive not configured"}}
            }
        },
        "/extract": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Extract minutes from model output",
                "parameters": [
                    {"description": "Raw model output", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/summary.ExtractRequest"}}
                ],
                "responses": {"200": {"description": "Extracted summary"}}
            }
        },
        "/transcriptions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Transcriptions"],
                "summary": "Transcribe a recording",
                "parameters": [
                    {"type": "file", "description": "Recorded audio", "name": "audio", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Also summarize the transcript", "name": "summarize", "in": "query"}
                ],
                "responses": {"200": {"description": "Transcription"}, "413": {"description": "Upload too large"}, "502": {"description": "Transcription failed"}, "503": {"description": "No transcriber configured"}}
            }
        }
    },
    "definitions": {
        "minutes.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "provider": {"type": "string"},
                "ollama": {"type": "string"},
                "model": {"type": "string"},
                "model_status": {"type": "string"},
                "models": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "summary.CreateSummaryRequest": {
            "type": "object",
            "required": ["transcript"],
            "properties": {"transcript": {"type": "string"}, "refresh": {"type": "boolean"}}
        },
        "summary.ExtractRequest": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Meeting Minutes API",
	Description:      "Turns meeting transcripts into structured minutes",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
