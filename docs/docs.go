// Package docs holds the generated OpenAPI document served by the
// Swagger UI route. Regenerate with:
//
//	swag init -g cmd/server/main.go -o docs
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
        "/recipes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recipes"],
                "summary": "List recipes",
                "operationId": "listRecipes",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "mealType", "in": "query"},
                    {"type": "string", "name": "dishType", "in": "query"},
                    {"type": "string", "name": "cookingMethod", "in": "query"},
                    {"type": "string", "name": "dietary", "in": "query"},
                    {"type": "integer", "name": "timeMax", "in": "query"},
                    {"type": "string", "name": "difficulty", "in": "query"},
                    {"type": "boolean", "name": "budget", "in": "query"},
                    {"type": "boolean", "name": "healthy", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/filter.Result"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/recipes/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recipes"],
                "summary": "Get a recipe",
                "operationId": "getRecipe",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Recipe"}},
                    "404": {"description": "Recipe not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "List reviews for a recipe",
                "operationId": "listReviews",
                "parameters": [
                    {"type": "string", "name": "recipeSlug", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}},
                    "400": {"description": "Missing recipeSlug", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Submit a review",
                "operationId": "submitReview",
                "parameters": [
                    {"type": "string", "name": "X-Anonymous-ID", "in": "header"},
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Review"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "No identity", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Review statistics for a recipe",
                "operationId": "reviewStats",
                "parameters": [
                    {"type": "string", "name": "recipeSlug", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/repo.ReviewStats"}},
                    "400": {"description": "Missing recipeSlug", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews/users/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reviews"],
                "summary": "Public reviewer profile",
                "operationId": "reviewerProfile",
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PublicProfile"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/reviews/{id}": {
            "delete": {
                "tags": ["Reviews"],
                "summary": "Delete a review",
                "operationId": "deleteReview",
                "parameters": [
                    {"type": "string", "name": "X-Anonymous-ID", "in": "header"},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Review not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new account",
                "operationId": "signUp",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.Account"}},
                    "400": {"description": "Invalid payload or rejected by provider", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign in",
                "operationId": "login",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Account"}},
                    "401": {"description": "Bad credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign out",
                "operationId": "logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/forgot-password": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request a password reset",
                "operationId": "forgotPassword",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ForgotPasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current account",
                "operationId": "currentUser",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Account"}},
                    "401": {"description": "Not signed in", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/profile": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Update profile",
                "operationId": "updateProfile",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Account"}},
                    "401": {"description": "Not signed in", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/account": {
            "delete": {
                "tags": ["Auth"],
                "summary": "Delete account",
                "operationId": "deleteAccount",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Not signed in", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.Account": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "catalog.Recipe": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "time": {"type": "string"},
                "prepTime": {"type": "string"},
                "cookTime": {"type": "string"},
                "difficulty": {"type": "string"},
                "excerpt": {"type": "string"},
                "description": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "instructions": {"type": "array", "items": {"type": "string"}},
                "nutrition": {"type": "object", "additionalProperties": {"type": "string"}},
                "budget": {"type": "boolean"}
            }
        },
        "domain.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "recipe_slug": {"type": "string"},
                "user_id": {"type": "string"},
                "anonymous_id": {"type": "string"},
                "rating": {"type": "integer"},
                "comment": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "filter.Result": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "page": {"type": "integer"}
            }
        },
        "repo.ReviewStats": {
            "type": "object",
            "properties": {
                "average_rating": {"type": "number"},
                "total_reviews": {"type": "integer"},
                "rating_counts": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "services.PublicProfile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "avatarUrl": {"type": "string"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}
            }
        },
        "handlers.CredentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "anonymousId": {"type": "string"}
            }
        },
        "handlers.ForgotPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "handlers.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "avatarUrl": {"type": "string"}
            }
        },
        "handlers.SubmitReviewRequest": {
            "type": "object",
            "required": ["recipeSlug", "rating"],
            "properties": {
                "recipeSlug": {"type": "string"},
                "rating": {"type": "integer"},
                "comment": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Recipe Backend API",
	Description:      "Filtered recipe catalog, reviews and account endpoints for the recipe site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
