// Package docs registers the OpenAPI description served under /swagger.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/me": {"get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current user's profile", "responses": {"200": {"description": "OK"}}}},
        "/me/bootstrap": {"get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Initial client state for the signed-in user", "responses": {"200": {"description": "OK"}}}},
        "/playlists": {"get": {"tags": ["playlists"], "security": [{"BearerAuth": []}], "summary": "Available playlists", "responses": {"200": {"description": "OK"}}}},
        "/playlists/{id}": {"get": {"tags": ["playlists"], "security": [{"BearerAuth": []}], "summary": "One playlist with its exercises", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/playlists/{id}/progress": {"get": {"tags": ["playlists"], "security": [{"BearerAuth": []}], "summary": "Completion figures for a playlist", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/sessions/today": {"get": {"tags": ["sessions"], "security": [{"BearerAuth": []}], "summary": "Session for the current day, or an empty one", "parameters": [{"type": "string", "name": "date", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/history": {"get": {"tags": ["sessions"], "security": [{"BearerAuth": []}], "summary": "Every recorded day keyed by date", "responses": {"200": {"description": "OK"}}}},
        "/sessions/{date}": {
            "get": {"tags": ["sessions"], "security": [{"BearerAuth": []}], "summary": "Session recorded for one date", "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["sessions"], "security": [{"BearerAuth": []}], "summary": "Record exercise progress for a date", "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/progress/dashboard": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "Program week, streaks, suggested playlist and per-playlist cards", "responses": {"200": {"description": "OK"}}}},
        "/progress/overview": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "Totals, streaks and recent activity", "responses": {"200": {"description": "OK"}}}},
        "/progress/calendar": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "Workout dates within a month", "parameters": [{"type": "string", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/progress/snapshot": {"get": {"tags": ["progress"], "security": [{"BearerAuth": []}], "summary": "Progress snapshot as of the client's day", "parameters": [{"type": "string", "name": "date", "in": "query"}], "responses": {"200": {"description": "OK"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Fit API",
	Description:      "Workout sessions, program week and streak tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
