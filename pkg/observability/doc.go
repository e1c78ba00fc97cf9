/*
Package observability turns questionnaire lifecycle hooks into logs and
Prometheus metrics.

Both helpers return a domain.LifecycleHooks value that can be merged and
passed to questionnaire.WithHooks:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
	eng := questionnaire.New(questionnaire.WithHooks(hooks))
*/
package observability
