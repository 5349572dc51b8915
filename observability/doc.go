// Package observability provides OpenTelemetry tracing and metrics for the
// service registry.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.TracerConfigFromSettings(settings))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.MeterConfigFromSettings(settings))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	c := di.New(di.WithMetrics(metrics))
//
// Every producer call is wrapped in a "di.produce" span and timed:
//
//	ctx, op := observability.StartProduce(ctx, tracer, metrics, "Global", "*mail.Client", "singleton")
//	value, err := producer(ctx)
//	op.End(err)
package observability
