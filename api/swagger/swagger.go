package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance API",
        "description": "Classroom attendance recording and reporting service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Attendance", "description": "Daily attendance marking and monthly listings"},
        {"name": "Absences", "description": "Absent student reporting and reason updates"},
        {"name": "Holidays", "description": "Holiday registry"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for a class on a date",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Attendance marked"},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "get": {
                "tags": ["Attendance"],
                "summary": "List a month's attendance for a standard/class pair",
                "parameters": [
                    {"name": "standard", "in": "query", "required": true, "type": "string"},
                    {"name": "class", "in": "query", "required": true, "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "integer", "description": "0-based month"},
                    {"name": "year", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Enriched attendance rows"},
                    "400": {"description": "Missing parameter", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/absent-students": {
            "get": {
                "tags": ["Absences"],
                "summary": "List absent students over a date range",
                "parameters": [
                    {"name": "startDate", "in": "query", "required": true, "type": "integer", "description": "Epoch milliseconds"},
                    {"name": "endDate", "in": "query", "required": true, "type": "integer", "description": "Epoch milliseconds"},
                    {"name": "standard", "in": "query", "type": "string"},
                    {"name": "className", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Sorted enriched absences"},
                    "400": {"description": "Invalid date parameters", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Update the absence reason on a single record",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReasonRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/absent-students/export": {
            "get": {
                "tags": ["Absences"],
                "summary": "Download the absence list as CSV or PDF",
                "parameters": [
                    {"name": "startDate", "in": "query", "required": true, "type": "integer"},
                    {"name": "endDate", "in": "query", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/update-attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Update a single attendance record's status and reason",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "400": {"description": "Invalid id or status", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/holiday": {
            "get": {
                "tags": ["Holidays"],
                "summary": "List holidays for a calendar year",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Holidays"}
                }
            }
        },
        "/holiday/add": {
            "post": {
                "tags": ["Holidays"],
                "summary": "Add a holiday",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateHolidayRequest"}}
                ],
                "responses": {
                    "200": {"description": "Created holiday"},
                    "400": {"description": "Date and reason required", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/holiday/delete": {
            "delete": {
                "tags": ["Holidays"],
                "summary": "Delete a holiday",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteHolidayRequest"}}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Holiday not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        }
    },
    "definitions": {
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "standard": {"type": "string"},
                "class": {"type": "string"},
                "attendance": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "studentId": {"type": "integer"},
                            "status": {"type": "string", "enum": ["P", "A"]}
                        }
                    }
                }
            }
        },
        "UpdateAttendanceRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "status": {"type": "string", "enum": ["P", "A"]},
                "reason": {"type": "string"},
                "standard": {"type": "string"},
                "className": {"type": "string"}
            }
        },
        "UpdateReasonRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "reason": {"type": "string"}
            }
        },
        "CreateHolidayRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "DeleteHolidayRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
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
