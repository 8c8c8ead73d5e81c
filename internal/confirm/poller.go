// Package confirm polls the cluster until a submitted signature reaches
// confirmed or finalized commitment.
package confirm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// Status is a confirmation status as reported by the cluster. The empty
// status means the signature has not been seen yet.
type Status string

const (
	StatusUnseen    Status = ""
	StatusProcessed Status = "processed"
	StatusConfirmed Status = "confirmed"
	StatusFinalized Status = "finalized"
)

// Terminal reports whether s ends polling successfully.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFinalized
}

// Statuser looks up the confirmation status of one signature.
type Statuser interface {
	SignatureStatus(ctx context.Context, signature string) (string, error)
}

// StatuserFunc adapts a function to Statuser.
type StatuserFunc func(ctx context.Context, signature string) (string, error)

func (f StatuserFunc) SignatureStatus(ctx context.Context, signature string) (string, error) {
	return f(ctx, signature)
}

const (
	DefaultInterval         = time.Second
	DefaultAirdropAttempts  = 30
	DefaultTransferAttempts = 60
)

// Policy holds the attempt bounds for each kind of submission.
type Policy struct {
	Interval         time.Duration
	AirdropAttempts  int
	TransferAttempts int
}

// DefaultPolicy returns the stock bounds.
func DefaultPolicy() Policy {
	return Policy{
		Interval:         DefaultInterval,
		AirdropAttempts:  DefaultAirdropAttempts,
		TransferAttempts: DefaultTransferAttempts,
	}
}

// Airdrop returns a poller bounded for airdrops.
func (p Policy) Airdrop(s Statuser) *Poller {
	return &Poller{Statuser: s, Interval: p.Interval, MaxAttempts: p.AirdropAttempts, Kind: "airdrop"}
}

// Transfer returns a poller bounded for transfers.
func (p Policy) Transfer(s Statuser) *Poller {
	return &Poller{Statuser: s, Interval: p.Interval, MaxAttempts: p.TransferAttempts, Kind: "transfer"}
}

var confirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "calcwallet_confirmations_total",
	Help: "Finished confirmation polls, by submission kind and outcome.",
}, []string{"kind", "outcome"})

// Poller waits for one signature. Each tick sleeps Interval and then asks
// for the status, up to MaxAttempts ticks.
type Poller struct {
	Statuser    Statuser
	Interval    time.Duration
	MaxAttempts int
	// Kind labels metrics and logs.
	Kind string
}

// Wait polls until the signature is confirmed or finalized. It returns a
// TimedOut error when the attempts run out, the lookup error if a status
// request fails, and ctx.Err() if ctx is cancelled between ticks.
func (p *Poller) Wait(ctx context.Context, signature string) (status Status, err error) {
	kind := p.Kind
	if kind == "" {
		kind = "unknown"
	}
	defer func() {
		outcome := "confirmed"
		if err != nil {
			outcome = apperr.KindOf(err).String()
		}
		confirmationsTotal.WithLabelValues(kind, outcome).Inc()
	}()

	entry := log.WithFields(logrus.Fields{"kind": kind, "signature": signature})
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-timer.C:
		}

		raw, err := p.Statuser.SignatureStatus(ctx, signature)
		if err != nil {
			entry.WithError(err).WithField("attempt", attempt).Warn("Status lookup failed")
			return status, err
		}
		status = Status(raw)
		if status.Terminal() {
			entry.WithFields(logrus.Fields{"attempt": attempt, "status": status}).Info("Signature confirmed")
			return status, nil
		}
		entry.WithFields(logrus.Fields{"attempt": attempt, "status": status}).Debug("Still pending")
		timer.Reset(p.Interval)
	}

	entry.WithField("attempts", p.MaxAttempts).Warn("Gave up waiting for confirmation")
	return status, apperr.New(apperr.TimedOut, "signature %s not confirmed after %d attempts", signature, p.MaxAttempts)
}
