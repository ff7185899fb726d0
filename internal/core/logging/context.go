package logging

import "context"

type contextKey string

const (
	reportIDKey contextKey = "report_id"
	categoryKey contextKey = "category"
)

// WithReportID adds a report ID to the context.
func WithReportID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reportIDKey, id)
}

// WithCategory adds a category filter to the context.
func WithCategory(ctx context.Context, category string) context.Context {
	return context.WithValue(ctx, categoryKey, category)
}

// ReportID returns the report ID stored in ctx, or "".
func ReportID(ctx context.Context) string {
	id, _ := ctx.Value(reportIDKey).(string)
	return id
}

// Category returns the category stored in ctx, or "".
func Category(ctx context.Context) string {
	c, _ := ctx.Value(categoryKey).(string)
	return c
}
