package main

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/tinyrange/cfront/internal/metrics"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		log.Fatal(err)
	}
	return reg
}

// serve exposes reg on addr until the process exits.
func serve(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(rw http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/" {
			fmt.Fprintln(rw, "cfront metrics are at /metrics")
		} else {
			http.NotFound(rw, req)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux}
	log.Fatal(server.ListenAndServe())
}

// printMetrics writes every gathered family in the text exposition format.
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
