// Package docs registers the OpenAPI description of the fincockpit API with swag.
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
        "/records/append": {"post": {"tags": ["records"], "summary": "Append a record", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AppendRecordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/apperrors.AppError"}}}}},
        "/records/find": {"post": {"tags": ["records"], "summary": "Find a record", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.FindRecordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RecordResponse"}}, "400": {"description": "Validation error or unknown id", "schema": {"$ref": "#/definitions/apperrors.AppError"}}}}},
        "/records/update": {"post": {"tags": ["records"], "summary": "Update a record", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateRecordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}, "400": {"description": "Validation error or unknown id", "schema": {"$ref": "#/definitions/apperrors.AppError"}}}}},
        "/records/delete": {"post": {"tags": ["records"], "summary": "Delete a record", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DeleteRecordRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}, "400": {"description": "Validation error or unknown id", "schema": {"$ref": "#/definitions/apperrors.AppError"}}}}},
        "/records/seed-recurring": {"post": {"tags": ["records"], "summary": "Seed recurring debt payments", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StateRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}}}},
        "/goals": {"post": {"tags": ["records"], "summary": "Append a goal", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AppendGoalRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}}}},
        "/snapshots/default": {"get": {"tags": ["snapshots"], "summary": "Default snapshot", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}}}},
        "/snapshots/merge": {"post": {"tags": ["snapshots"], "summary": "Merge an imported snapshot", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.MergeStateRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MergeStateResponse"}}}}},
        "/personas/impact": {"post": {"tags": ["personas"], "summary": "Persona impact", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.PersonaImpactRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/personas/rename": {"post": {"tags": ["personas"], "summary": "Rename a persona", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RenamePersonaRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}}}},
        "/personas/delete": {"post": {"tags": ["personas"], "summary": "Delete a persona", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DeletePersonaRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StateResponse"}}}}},
        "/metrics/dashboard": {"post": {"tags": ["analytics"], "summary": "Dashboard health", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StateRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/loans/payoff": {"post": {"tags": ["loans"], "summary": "Estimate payoff months", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.PayoffEstimateRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/loans/compare": {"post": {"tags": ["loans"], "summary": "Compare payoff scenarios", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.ComparePayoffRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/cards/recommendations": {"post": {"tags": ["loans"], "summary": "Recommend card payments", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StateRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/projections/net-worth": {"post": {"tags": ["analytics"], "summary": "Project net worth", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}}}},
        "/feed": {"post": {"tags": ["analytics"], "summary": "Unified feed", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.FeedRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FeedResponse"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/apperrors.AppError"}}}}},
        "/cockpit": {"post": {"tags": ["analytics"], "summary": "Planning cockpit", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StateRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/findings": {"post": {"tags": ["findings"], "summary": "Risk findings", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.StateRequest"}}], "responses": {"200": {"description": "OK"}}}},
        "/findings/async": {"post": {"tags": ["findings"], "summary": "Risk findings through the worker", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}, "504": {"description": "Worker timed out"}}}}
    },
    "definitions": {
        "apperrors.AppError": {"type": "object", "properties": {"kind": {"type": "string"}, "message": {"type": "string"}, "recoverable": {"type": "boolean"}, "details": {"type": "object"}}},
        "dto.StateRequest": {"type": "object", "properties": {"state": {"type": "object"}}},
        "dto.StateResponse": {"type": "object", "properties": {"state": {"type": "object"}, "auditEntry": {"$ref": "#/definitions/domain.AuditEntry"}}},
        "domain.AuditEntry": {"type": "object", "properties": {"id": {"type": "string"}, "timestamp": {"type": "string"}, "contextTag": {"type": "string"}, "message": {"type": "string"}, "collection": {"type": "string"}, "recordId": {"type": "string"}}},
        "dto.FindRecordRequest": {"type": "object", "required": ["collection", "id"], "properties": {"state": {"type": "object"}, "collection": {"type": "string"}, "id": {"type": "string"}}},
        "dto.RecordResponse": {"type": "object", "properties": {"record": {"type": "object"}}},
        "dto.AppendRecordRequest": {"type": "object", "required": ["record"], "properties": {"state": {"type": "object"}, "collection": {"type": "string"}, "entryType": {"type": "string"}, "record": {"type": "object"}}},
        "dto.AppendGoalRequest": {"type": "object", "required": ["goal"], "properties": {"state": {"type": "object"}, "goal": {"type": "object"}}},
        "dto.UpdateRecordRequest": {"type": "object", "required": ["collection", "id", "patch"], "properties": {"state": {"type": "object"}, "collection": {"type": "string"}, "id": {"type": "string"}, "patch": {"type": "object"}}},
        "dto.DeleteRecordRequest": {"type": "object", "required": ["collection", "id"], "properties": {"state": {"type": "object"}, "collection": {"type": "string"}, "id": {"type": "string"}}},
        "dto.MergeStateRequest": {"type": "object", "properties": {"current": {"type": "object"}, "imported": {"type": "object"}, "currentAudit": {"type": "array", "items": {"type": "object"}}, "incomingAudit": {"type": "array", "items": {"type": "object"}}}},
        "dto.MergeStateResponse": {"type": "object", "properties": {"state": {"type": "object"}, "auditTimeline": {"type": "array", "items": {"$ref": "#/definitions/domain.AuditEntry"}}}},
        "dto.PersonaImpactRequest": {"type": "object", "required": ["name"], "properties": {"state": {"type": "object"}, "name": {"type": "string"}}},
        "dto.RenamePersonaRequest": {"type": "object", "required": ["from", "to"], "properties": {"state": {"type": "object"}, "from": {"type": "string"}, "to": {"type": "string"}, "note": {"type": "string"}, "emoji": {"type": "string"}}},
        "dto.DeletePersonaRequest": {"type": "object", "required": ["name"], "properties": {"state": {"type": "object"}, "name": {"type": "string"}, "mode": {"type": "string", "enum": ["reassign", "cascade"]}, "fallback": {"type": "string"}}},
        "dto.PayoffEstimateRequest": {"type": "object", "required": ["balance", "monthlyPayment", "interestRatePercent"], "properties": {"balance": {"type": "number"}, "monthlyPayment": {"type": "number"}, "interestRatePercent": {"type": "number"}}},
        "dto.ComparePayoffRequest": {"type": "object", "required": ["balance", "interestRatePercent", "monthlyPayment", "extraPayment"], "properties": {"balance": {"type": "number"}, "interestRatePercent": {"type": "number"}, "monthlyPayment": {"type": "number"}, "extraPayment": {"type": "number"}}},
        "dto.FeedRequest": {"type": "object", "properties": {"state": {"type": "object"}, "query": {"type": "object"}, "limit": {"type": "integer", "minimum": 0, "maximum": 500}, "nextToken": {"type": "string"}}},
        "dto.FeedResponse": {"type": "object", "properties": {"rows": {"type": "array", "items": {"type": "object"}}, "nextToken": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "fincockpit API",
	Description:      "Personal-finance computation engine: records, metrics, simulations and risk findings over a client-held snapshot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
