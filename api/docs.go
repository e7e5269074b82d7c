// Package api holds the OpenAPI document served at /swagger/. Maintained by
// hand; regenerate with swag if the annotation surface grows.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": ["http", "https"],
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT session token. Format: \"Bearer {token}\"."
        }
    },
    "paths": {
        "/v1/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register Company Endpoint",
                "description": "Create a company and its first admin user, then email a verification link"
            }
        },
        "/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login Endpoint",
                "description": "Authenticate with email and password and receive a session token"
            }
        },
        "/v1/auth/verify-email": {
            "post": {
                "tags": ["Auth"],
                "summary": "Verify Email Endpoint",
                "description": "Consume the verification token from the emailed link"
            }
        },
        "/v1/auth/resend-verification": {
            "post": {
                "tags": ["Auth"],
                "summary": "Resend Verification Endpoint",
                "description": "Issue a fresh verification token for the authenticated user and email it",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/auth/update-email": {
            "post": {
                "tags": ["Auth"],
                "summary": "Update Email Endpoint",
                "description": "Fix the authenticated user's registration email before verification",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/auth/create-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create Password Endpoint",
                "description": "Set the authenticated user's password to finish account setup",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/company": {
            "get": {
                "tags": ["Company"],
                "summary": "Get Company Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/company/complete-onboarding": {
            "post": {
                "tags": ["Company"],
                "summary": "Complete Onboarding Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List Departments Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Departments"],
                "summary": "Create Department Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/departments/{id}": {
            "get": {
                "tags": ["Departments"],
                "summary": "Get Department Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Departments"],
                "summary": "Update Department Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Departments"],
                "summary": "Delete Department Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/roles": {
            "get": {
                "tags": ["Roles"],
                "summary": "List Roles Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Roles"],
                "summary": "Create Role Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/roles/{id}": {
            "get": {
                "tags": ["Roles"],
                "summary": "Get Role Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Roles"],
                "summary": "Update Role Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Roles"],
                "summary": "Delete Role Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List Employees Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Create Employee Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/v1/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get Employee Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["Employees"],
                "summary": "Update Employee Endpoint",
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Delete Employee Endpoint",
                "security": [{"BearerAuth": []}]
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check Endpoint"
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "EasyHR API",
	Description:      "Multi-tenant HR onboarding backend: company registration with email verification, JWT sessions, and department/role/employee management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
