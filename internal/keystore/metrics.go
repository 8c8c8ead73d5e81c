package keystore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

var opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "calcwallet_keystore_ops_total",
	Help: "Key store operations against the calculator, by outcome.",
}, []string{"op", "outcome"})

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	opsTotal.WithLabelValues(op, outcome).Inc()
}
