package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

var rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "calcwallet_rpc_requests_total",
	Help: "JSON-RPC requests sent to the cluster, by method and outcome.",
}, []string{"method", "outcome"})

func observe(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	rpcRequestsTotal.WithLabelValues(method, outcome).Inc()
}
