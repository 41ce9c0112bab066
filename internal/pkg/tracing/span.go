package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя tracer-а экспортёра.
const InstrumentationName = "github.com/Kargones/hanadb-exporter"

// Имена атрибутов spans.
const (
	AttrQuery    = attribute.Key("hanadb.query")
	AttrMetric   = attribute.Key("hanadb.metric")
	AttrRows     = attribute.Key("hanadb.rows")
	AttrExporter = attribute.Key("hanadb.exporter")
)

// Tracer возвращает tracer глобального TracerProvider.
// Пока провайдер не зарегистрирован, spans ничего не стоят.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan открывает span с атрибутами.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan закрывает span, отмечая ошибку если она есть.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
