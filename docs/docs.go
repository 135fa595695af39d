// Package docs registers the fintrack OpenAPI document with swag.
// Regenerate with `swag init` after changing handler annotations.
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
        "/api/v1/auth/register": {"post": {"tags": ["auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/api/v1/auth/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/types": {"get": {"tags": ["taxonomy"], "summary": "Transaction types", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/categories": {"get": {"tags": ["taxonomy"], "summary": "Categories", "produces": ["application/json"], "parameters": [{"type": "integer", "name": "type_id", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List transactions", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "page_size", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Add transaction", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/transactions/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/budgets": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "List budgets", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Create budget", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/budgets/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Update budget", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Delete budget", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/statistics/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Dashboard", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/chart_type"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/statistics/categories": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Category breakdown", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}, {"$ref": "#/parameters/chart_type"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/statistics/months": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Monthly trend", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/chart_type"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/statistics/budgets": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Budget utilization", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/export/csv": {"get": {"security": [{"BearerAuth": []}], "tags": ["export"], "summary": "Export CSV", "produces": ["text/csv"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}], "responses": {"200": {"description": "CSV file"}}}},
        "/api/v1/export/json": {"get": {"security": [{"BearerAuth": []}], "tags": ["export"], "summary": "Export JSON", "produces": ["application/json"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/export/excel": {"get": {"security": [{"BearerAuth": []}], "tags": ["export"], "summary": "Export Excel", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "parameters": [{"$ref": "#/parameters/period"}, {"$ref": "#/parameters/start"}, {"$ref": "#/parameters/end"}, {"$ref": "#/parameters/category"}, {"$ref": "#/parameters/search"}], "responses": {"200": {"description": "xlsx file"}}}}
    },
    "parameters": {
        "period": {"type": "string", "enum": ["month", "quarter", "year", "custom"], "name": "period", "in": "query"},
        "start": {"type": "string", "description": "custom start (2024-01-01)", "name": "start", "in": "query"},
        "end": {"type": "string", "description": "custom end (2024-12-31)", "name": "end", "in": "query"},
        "category": {"type": "string", "description": "exact category name", "name": "category", "in": "query"},
        "search": {"type": "string", "description": "free-text search", "name": "search", "in": "query"},
        "chart_type": {"type": "string", "enum": ["pie", "bar", "line", "area"], "name": "chart_type", "in": "query"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "fintrack API",
	Description:      "Personal finance tracking: transactions, budgets and dashboard statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
