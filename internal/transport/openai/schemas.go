package openai

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// operation names the oracle call for schema naming and metrics labels.
type operation string

const (
	opCreateCategories operation = "create_categories"
	opCreateContent    operation = "create_content"
	opCreateUser       operation = "create_user"
	opCreateQuery      operation = "create_query"
)

// System prompts per operation.
const (
	categorySystemPrompt = "You are a catalog taxonomist. You produce concise, distinct category names with one-sentence descriptions."
	contentSystemPrompt  = "You are a content generator for a searchable catalog. You produce realistic titles and descriptions."
	userSystemPrompt     = "You are a user profile generator. You produce plausible, varied user personas for a catalog service."
	querySystemPrompt    = "You are a search assistant. You produce short, realistic search queries a user would actually type."
)

// categoriesPayload wraps the category list so the top-level schema is an object.
type categoriesPayload struct {
	Categories []domain.CategoryDraft `json:"categories"`
}

// schemaDefinition wraps a jsonschema.Definition for the response_format field.
type schemaDefinition struct {
	definition *jsonschema.Definition
}

func objectSchema(props map[string]jsonschema.Definition, required []string) *schemaDefinition {
	return &schemaDefinition{definition: &jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}}
}

var categoriesSchema = objectSchema(map[string]jsonschema.Definition{
	"categories": {
		Type: jsonschema.Array,
		Items: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":        {Type: jsonschema.String, Description: "Short category name, unique within the list"},
				"description": {Type: jsonschema.String, Description: "One-sentence category description"},
			},
			Required:             []string{"name", "description"},
			AdditionalProperties: false,
		},
	},
}, []string{"categories"})

var contentSchema = objectSchema(map[string]jsonschema.Definition{
	"title":       {Type: jsonschema.String, Description: "Title of the catalog entry"},
	"description": {Type: jsonschema.String, Description: "Two to three sentence description"},
}, []string{"title", "description"})

var userSchema = objectSchema(map[string]jsonschema.Definition{
	"brief_explanation": {Type: jsonschema.String, Description: "One-sentence background of the user and their interests"},
	"profession":        {Type: jsonschema.String, Description: "The user's occupation"},
	"preferences": {
		Type:        jsonschema.Array,
		Description: "Interests chosen from the provided category names only",
		Items:       &jsonschema.Definition{Type: jsonschema.String},
	},
}, []string{"brief_explanation", "profession", "preferences"})

var querySchema = objectSchema(map[string]jsonschema.Definition{
	"query_content": {Type: jsonschema.String, Description: "The search query text"},
	"category":      {Type: jsonschema.String, Description: "The category the query belongs to"},
}, []string{"query_content", "category"})
