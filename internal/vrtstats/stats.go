/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package vrtstats exposes Prometheus counters for decode outcomes, used by
// cmd/vrtdump when run with --metrics.
package vrtstats

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ember91/libvrt-sub001/vrt"
)

// Exporter holds the decode-outcome counters for one cmd/vrtdump run.
type Exporter struct {
	registry *prometheus.Registry

	PacketsDecoded  prometheus.Counter
	WordsProcessed  prometheus.Counter
	DecodeErrors    *prometheus.CounterVec
	PacketsByType   *prometheus.CounterVec
}

// NewExporter creates an Exporter with all its counters registered.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		PacketsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vrtdump_packets_decoded_total",
			Help: "Number of VRT packets successfully decoded.",
		}),
		WordsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vrtdump_words_processed_total",
			Help: "Number of 32-bit words read from the input.",
		}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vrtdump_decode_errors_total",
			Help: "Number of decode failures, by vrt.Code.",
		}, []string{"code"}),
		PacketsByType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vrtdump_packets_by_type_total",
			Help: "Number of packets successfully decoded, by PacketType.",
		}, []string{"packet_type"}),
	}
	e.registry.MustRegister(e.PacketsDecoded, e.WordsProcessed, e.DecodeErrors, e.PacketsByType)
	return e
}

// ObserveDecode records the outcome of one ReadPacket call. rv is the
// return value of vrt.ReadPacket: a word count on success, a negative
// vrt.Code on failure.
func (e *Exporter) ObserveDecode(rv int32, packetType vrt.PacketType) {
	if rv < 0 {
		e.DecodeErrors.WithLabelValues(vrt.Code(rv).Error()).Inc()
		return
	}
	e.PacketsDecoded.Inc()
	e.WordsProcessed.Add(float64(rv))
	e.PacketsByType.WithLabelValues(packetType.String()).Inc()
}

// Serve starts an HTTP server exposing the registry on /metrics. It blocks;
// if the server fails, it logs the error and exits the process.
func (e *Exporter) Serve(listenPort int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", listenPort), mux))
}
