package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed payment.html
var paymentPageHTML string

var paymentTemplate = template.Must(template.New("payment").Parse(paymentPageHTML))

type paymentPageData struct {
	PublicKey string
}

// PaymentPage serves the hosted-fields payment collection page. The page
// tokenizes card details with the publishable key, posts the token to
// /api/subscribe, and reports the outcome to its host through the bridge
// message protocol.
func PaymentPage(publicKey string) http.HandlerFunc {
	log := logrus.WithField("component", "handlers")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := paymentTemplate.Execute(w, paymentPageData{PublicKey: publicKey}); err != nil {
			log.WithError(err).Error("render payment page")
		}
	}
}
