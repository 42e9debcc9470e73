package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/config"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/notify"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/rdo"
)

// Notificador usado pela varredura; substituível em teste.
var notificadorAtraso notify.Notifier = notify.NewSMTPNotifierFromEnv()

// VarreduraAtrasosHandler dispara a varredura diária de atraso de RDO.
// Pensado para ser chamado por um agendador externo (cron) uma vez ao
// dia; execuções repetidas não duplicam notificações.
func VarreduraAtrasosHandler(c *gin.Context) {
	resultado := rdo.VarrerAtrasos(config.DB, notificadorAtraso, time.Now())
	c.JSON(http.StatusOK, resultado)
}
