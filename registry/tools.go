package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonwraymond/sitesearch/contact"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/index"
	"github.com/jonwraymond/sitesearch/logging"
)

// Site tool names.
const (
	ToolSearch     = "site_search"
	ToolDescribe   = "site_describe"
	ToolCategories = "site_categories"
	ToolContact    = "contact_submit"
)

// Site bundles the services behind the site tools and the REST API.
type Site struct {
	Discovery *discovery.Discovery

	// Submitter receives contact requests. If nil, contact_submit and
	// POST /api/contact are not available.
	Submitter contact.Submitter

	Logger *zap.Logger
}

func (s Site) logger() *zap.Logger {
	return logging.OrNop(s.Logger)
}

// SearchArgs are the site_search arguments.
type SearchArgs struct {
	Query    string `json:"query"`
	Limit    int    `json:"limit,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
	Category string `json:"category,omitempty"`
}

// SearchOutput is the site_search result.
type SearchOutput struct {
	Query      string            `json:"query"`
	Results    discovery.Results `json:"results"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

// DescribeArgs are the site_describe arguments.
type DescribeArgs struct {
	ID    int    `json:"id"`
	Level string `json:"level,omitempty"`
}

// CategoriesOutput is the site_categories result.
type CategoriesOutput struct {
	Categories []string        `json:"categories"`
	Featured   []index.Summary `json:"featured"`
}

// ContactOutput is the contact_submit result.
type ContactOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Search runs a site search. A cursor switches to paginated search.
func (s Site) Search(ctx context.Context, args SearchArgs) (SearchOutput, error) {
	out := SearchOutput{Query: args.Query}
	var err error
	out.Results, out.NextCursor, err = s.Discovery.SearchPage(ctx, args.Query, args.Limit, args.Cursor)
	if err != nil {
		return SearchOutput{}, err
	}
	if args.Category != "" {
		out.Results = out.Results.FilterByCategory(args.Category)
	}
	if out.Results == nil {
		out.Results = discovery.Results{}
	}
	return out, nil
}

// Describe documents one entry. The level defaults to full.
func (s Site) Describe(args DescribeArgs) (discovery.EntryDoc, error) {
	level := discovery.DetailLevel(strings.ToLower(args.Level))
	if level == "" {
		level = discovery.DetailFull
	}
	return s.Discovery.Describe(args.ID, level)
}

// Categories lists categories and featured entries.
func (s Site) Categories() CategoriesOutput {
	out := CategoriesOutput{
		Categories: s.Discovery.Categories(),
		Featured:   s.Discovery.Featured(),
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if out.Featured == nil {
		out.Featured = []index.Summary{}
	}
	return out
}

// Contact validates and submits a contact request.
func (s Site) Contact(ctx context.Context, req contact.Request) (ContactOutput, error) {
	if s.Submitter == nil {
		return ContactOutput{}, errors.New("contact submissions are disabled")
	}
	form := contact.NewForm(s.Submitter, contact.WithLogger(s.logger()))
	sub, err := form.Submit(ctx, req)
	if err != nil {
		return ContactOutput{}, err
	}
	return ContactOutput{ID: sub.ID, Status: form.Status().String()}, nil
}

func objectSchema(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// RegisterSiteTools registers the site tools backed by site.
func RegisterSiteTools(r *Registry, site Site) error {
	if site.Discovery == nil {
		return fmt.Errorf("%w: site discovery is required", ErrInvalidRequest)
	}

	err := r.RegisterLocalFunc(ToolSearch,
		"Search the site's pages and sections. Returns up to 8 ranked entries with their URL.",
		objectSchema([]string{"query"}, map[string]any{
			"query":    prop("string", "Free text query"),
			"limit":    prop("integer", "Maximum results"),
			"cursor":   prop("string", "Pagination cursor from a previous call"),
			"category": prop("string", "Only return entries of this category"),
		}),
		func(ctx context.Context, raw map[string]any) (any, error) {
			var args SearchArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return site.Search(ctx, args)
		},
		WithTitle("Site search"), WithTags("search", "site"))
	if err != nil {
		return err
	}

	err = r.RegisterLocalFunc(ToolDescribe,
		"Describe a site entry by id. Level is summary or full.",
		objectSchema([]string{"id"}, map[string]any{
			"id":    prop("integer", "Entry id"),
			"level": map[string]any{"type": "string", "enum": []string{"summary", "full"}},
		}),
		func(_ context.Context, raw map[string]any) (any, error) {
			var args DescribeArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return site.Describe(args)
		},
		WithTitle("Describe entry"), WithTags("site", "docs"))
	if err != nil {
		return err
	}

	err = r.RegisterLocalFunc(ToolCategories,
		"List site categories and featured entries.",
		objectSchema(nil, map[string]any{}),
		func(context.Context, map[string]any) (any, error) {
			return site.Categories(), nil
		},
		WithTitle("Site categories"), WithTags("site"))
	if err != nil {
		return err
	}

	if site.Submitter == nil {
		return nil
	}
	return r.RegisterLocalFunc(ToolContact,
		"Send a message to the sales team.",
		objectSchema([]string{"name", "email", "organization", "message"}, map[string]any{
			"name":         prop("string", "Full name"),
			"email":        prop("string", "Reply address"),
			"organization": prop("string", "Company or agency"),
			"message":      prop("string", fmt.Sprintf("At least %d characters", contact.MinMessageLen)),
		}),
		func(ctx context.Context, raw map[string]any) (any, error) {
			var req contact.Request
			if err := decodeArgs(raw, &req); err != nil {
				return nil, err
			}
			return site.Contact(ctx, req)
		},
		WithTitle("Contact sales"), WithTags("contact"))
}

func decodeArgs(raw map[string]any, v any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return nil
}
