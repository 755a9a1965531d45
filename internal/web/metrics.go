package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mortgage-calculator/internal/form"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
)

var intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mortgage_form_intents_total",
	Help: "Form intents received, by kind and outcome.",
}, []string{"kind", "outcome"})

var knownKinds = map[form.Kind]struct{}{
	form.KindSubmit:           {},
	form.KindClear:            {},
	form.KindFieldEdited:      {},
	form.KindFieldFocused:     {},
	form.KindFieldBlurred:     {},
	form.KindModeChanged:      {},
	form.KindModeGroupClicked: {},
}

// countIntent folds kinds it does not know into "unknown" to keep the label
// set bounded.
func countIntent(kind form.Kind, err error) {
	if _, ok := knownKinds[kind]; !ok {
		kind = "unknown"
	}
	outcome := outcomeApplied
	if err != nil {
		outcome = outcomeRejected
	}
	intentsTotal.WithLabelValues(string(kind), outcome).Inc()
}
