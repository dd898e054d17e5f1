package modules

import "github.com/getkin/kin-openapi/openapi3"

func userSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("created_at", openapi3.NewDateTimeSchema()).
		WithProperty("updated_at", openapi3.NewDateTimeSchema()).
		WithRequired([]string{"id", "email", "name", "created_at", "updated_at"})
}

func usersSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("users", openapi3.NewArraySchema().WithItems(userSchema())).
		WithRequired([]string{"users"})
}

func createUserSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email").WithMaxLength(320)).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(255)).
		WithRequired([]string{"email", "name"})
}

func updateUserSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(255))
}

func livenessSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()).
		WithProperty("timestamp", openapi3.NewDateTimeSchema()).
		WithProperty("service", openapi3.NewStringSchema())
}

func readinessSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema().WithEnum("ready", "not_ready")).
		WithProperty("timestamp", openapi3.NewDateTimeSchema()).
		WithProperty("checks", openapi3.NewObjectSchema().WithAdditionalProperties(
			openapi3.NewStringSchema().WithEnum("healthy", "unhealthy"),
		))
}
