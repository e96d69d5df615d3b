package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"chocolateria/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStock es el payload encolado cuando una venta deja un producto en o
// por debajo de su stock mínimo.
type AlertaStock struct {
	ProductoID  uint   `json:"producto_id"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// AlertaWorker consume QueueAlertas y notifica por correo al responsable de
// inventario. Si no hay destinatario configurado solo deja registro en el log.
type AlertaWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

func NewAlertaWorker(mailer *infra.Mailer, destinatario string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, destinatario: destinatario}
}

func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AlertaStock
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}

	log.Warn().
		Uint("producto_id", payload.ProductoID).
		Str("producto", payload.Nombre).
		Int("stock", payload.Stock).
		Int("stock_minimo", payload.StockMinimo).
		Msg("alerta_worker: stock bajo")

	if w.destinatario == "" || w.mailer == nil {
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.Nombre)
	body := fmt.Sprintf(
		"El producto %s (id %d) quedó con %d unidades; el mínimo configurado es %d.",
		payload.Nombre, payload.ProductoID, payload.Stock, payload.StockMinimo)

	if err := w.mailer.SendAlertaStock(w.destinatario, subject, body); err != nil {
		log.Error().Err(err).Str("to", w.destinatario).Msg("alerta_worker: failed to send email")
		return
	}
	log.Info().Str("to", w.destinatario).Msg("alerta_worker: alerta enviada")
}
