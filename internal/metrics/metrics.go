// Package metrics holds the Prometheus collectors updated by the compiler
// pipeline. They are package-level so every stage can reach them without
// plumbing; commands decide where they are registered.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var Tokens = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "cfront_tokens_total",
	Help: "The number of tokens produced by the lexer.",
})

var Issues = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cfront_issues_total",
		Help: "The number of diagnostics collected, by severity.",
	},
	[]string{"severity"},
)

var Rollbacks = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "cfront_parse_rollbacks_total",
	Help: "The number of speculative parse attempts that were rolled back.",
})

var Folds = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "cfront_constant_folds_total",
	Help: "The number of operations evaluated at compile time.",
})

var Instructions = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "cfront_instructions_total",
	Help: "The number of IL instructions emitted.",
})

var Compilations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cfront_compilations_total",
		Help: "The number of translation units compiled.",
	},
	[]string{"success"},
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Tokens, Issues, Rollbacks, Folds, Instructions, Compilations} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
