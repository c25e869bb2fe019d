// Package docs registers the OpenAPI description served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/tournaments": {
            "get": {"tags": ["reports"], "summary": "List tournaments with status", "parameters": [{"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}
        },
        "/api/teams": {
            "get": {"tags": ["reports"], "summary": "List teams", "parameters": [{"$ref": "#/parameters/tournamentID"}, {"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/teams/roster": {
            "get": {"tags": ["reports"], "summary": "Team members", "parameters": [{"name": "team_id", "in": "query", "type": "integer"}, {"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/matches": {
            "get": {"tags": ["reports"], "summary": "List matches", "parameters": [{"$ref": "#/parameters/tournamentID"}, {"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/matches/results": {
            "get": {"tags": ["reports"], "summary": "Completed matches", "parameters": [{"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/stats/top-scorers": {
            "get": {"tags": ["reports"], "summary": "Top scorers", "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/stats/red-cards": {
            "get": {"tags": ["reports"], "summary": "Red cards", "parameters": [{"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/standings": {
            "get": {"tags": ["reports"], "summary": "Group standings", "parameters": [{"$ref": "#/parameters/tournamentID"}, {"$ref": "#/parameters/refresh"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/venues": {
            "get": {"tags": ["reports"], "summary": "Venues", "responses": {"200": {"description": "OK"}}}
        },
        "/api/notifications": {
            "get": {"tags": ["notifications"], "summary": "Last 50 notifications, newest first", "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Issue an admin token", "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}}}], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}
        },
        "/api/admin/tournaments": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Create tournament", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "409": {"description": "Name already exists"}}}
        },
        "/api/admin/tournaments/{tournamentID}": {
            "delete": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Delete tournament and everything that references it", "parameters": [{"$ref": "#/parameters/tournamentPath"}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/api/admin/tournaments/{tournamentID}/dates": {
            "patch": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Change tournament dates", "parameters": [{"$ref": "#/parameters/tournamentPath"}], "responses": {"204": {"description": "Updated"}}}
        },
        "/api/admin/tournaments/{tournamentID}/fixtures": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Generate round-robin group fixtures", "parameters": [{"$ref": "#/parameters/tournamentPath"}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/teams": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Create team in a tournament", "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/teams/{teamID}/captain": {
            "put": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Assign captain", "parameters": [{"name": "teamID", "in": "path", "required": true, "type": "integer"}], "responses": {"204": {"description": "Updated"}}}
        },
        "/api/admin/matches": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Schedule a match", "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/matches/{matchNo}/result": {
            "put": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Record final score", "parameters": [{"$ref": "#/parameters/matchPath"}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/matches/{matchNo}/reminder": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Email both rosters", "parameters": [{"$ref": "#/parameters/matchPath"}], "responses": {"200": {"description": "OK"}, "501": {"description": "SMTP not configured"}}}
        },
        "/api/admin/players": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Roster registrations", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/reports/export": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Upload a JSON snapshot of every report", "responses": {"201": {"description": "Created"}, "501": {"description": "Object storage not configured"}}}
        },
        "/api/admin/status": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Database status and counts", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/status/tables": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "Row count of every table", "responses": {"200": {"description": "OK"}}}
        }
    },
    "parameters": {
        "refresh": {"name": "refresh", "in": "query", "type": "boolean", "description": "Reload from the database first"},
        "tournamentID": {"name": "tournament_id", "in": "query", "type": "integer"},
        "tournamentPath": {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
        "matchPath": {"name": "matchNo", "in": "path", "required": true, "type": "integer"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Soccer Tournament API",
	Description:      "Tournament administration and reporting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
