package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Notebook Loan API",
        "description": "School-day calendar and loan due date service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "DueDates", "description": "Loan due date calculation"},
        {"name": "Calendar", "description": "School calendar overrides and imports"},
        {"name": "Backups", "description": "Calendar snapshot history"}
    ],
    "paths": {
        "/due-dates/next": {
            "get": {
                "tags": ["DueDates"],
                "summary": "Compute the next loan due date",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "description": "Reference timestamp (RFC3339 or YYYY-MM-DD), defaults to now"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid timestamp", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/due-dates/overdue": {
            "get": {
                "tags": ["DueDates"],
                "summary": "Assess whether a due date has passed",
                "parameters": [
                    {"name": "due", "in": "query", "required": true, "type": "string", "description": "Due date (RFC3339)"},
                    {"name": "at", "in": "query", "type": "string", "description": "Assessment timestamp (RFC3339), defaults to now"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or invalid timestamp", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/days": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List school day overrides",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/days/{date}": {
            "put": {
                "tags": ["Calendar"],
                "summary": "Set a single school day override",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string", "description": "Date (YYYY-MM-DD)"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSchoolDayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/import": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Import a school calendar file (ICS or CSV)",
                "security": [{"BearerAuth": []}, {"ImportKeyAuth": []}],
                "consumes": ["text/plain"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "ics or csv, sniffed when omitted"}
                ],
                "responses": {
                    "200": {"description": "Import report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Empty or unsupported upload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/export": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export the loaded school calendar",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf"}
                ],
                "responses": {
                    "200": {"description": "Calendar file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backups": {
            "post": {
                "tags": ["Backups"],
                "summary": "Trigger a calendar backup",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "202": {"description": "Backup queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Backups"],
                "summary": "List backup history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/backups/download": {
            "get": {
                "tags": ["Backups"],
                "summary": "Download a backup file via signed token",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Backup file"},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "ImportKeyAuth": {
            "type": "apiKey",
            "name": "X-Import-Key",
            "in": "header"
        }
    },
    "definitions": {
        "UpsertSchoolDayRequest": {
            "type": "object",
            "properties": {
                "is_school_day": {"type": "boolean"},
                "description": {"type": "string"}
            },
            "required": ["is_school_day"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
