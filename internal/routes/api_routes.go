package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/handlers"
	"github.com/adrianocbaa/defensoria-fogo-control-sub003/internal/middleware"
)

// RegisterAPIRoutes registra todas as rotas de API autenticadas.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- OBRAS ---
		obras := apiGroup.Group("/obras")
		{
			obras.GET("", handlers.ListObrasHandler)
			obras.POST("", handlers.CreateObraHandler)
			obras.GET("/:id", handlers.GetObraHandler)
			obras.PUT("/:id", handlers.UpdateObraHandler)
			obras.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteObraHandler)
			obras.POST("/:id/contatos", handlers.AddContatoObraHandler)

			// Orçamento: prévia da importação e confirmação.
			obras.POST("/:id/orcamento/importar", handlers.ImportarOrcamentoHandler)
			obras.POST("/:id/orcamento/confirmar", handlers.ConfirmarOrcamentoHandler)
			obras.GET("/:id/orcamento", handlers.ListarItensObraHandler)

			// Cronograma físico-financeiro.
			obras.POST("/:id/cronograma/importar", handlers.ImportarCronogramaHandler)
			obras.POST("/:id/cronograma/confirmar", handlers.ConfirmarCronogramaHandler)
			obras.GET("/:id/cronograma", handlers.GetCronogramaHandler)
			obras.DELETE("/:id/cronograma", handlers.DeleteCronogramaHandler)

			// Medições.
			obras.GET("/:id/medicoes", handlers.ListMedicoesHandler)
			obras.POST("/:id/medicoes", handlers.CreateMedicaoHandler)

			// Aditivos e o quadro financeiro.
			obras.GET("/:id/aditivos", handlers.ListAditivosHandler)
			obras.POST("/:id/aditivos", handlers.CreateAditivoHandler)
			obras.GET("/:id/aditivos/resumo", handlers.ResumoAditivosHandler)

			// RDO e importação de avanço físico.
			obras.GET("/:id/rdos", handlers.ListRdosHandler)
			obras.POST("/:id/rdos", handlers.CreateRdoHandler)
			obras.POST("/:id/importacoes", handlers.ImportarAvancoHandler)
			obras.GET("/:id/importacoes", handlers.ListImportacoesHandler)

			// Reajuste contratual.
			obras.POST("/:id/reajuste", handlers.CalcularReajusteHandler)
		}

		// --- ITENS DE ORÇAMENTO ---
		apiGroup.PUT("/itens/:itemId", handlers.AtualizarItemHandler)

		// --- MEDIÇÕES ---
		medicoes := apiGroup.Group("/medicoes")
		{
			medicoes.GET("/:medicaoId", handlers.GetMedicaoHandler)
			medicoes.PUT("/:medicaoId/itens", handlers.AtualizarItensMedicaoHandler)
			medicoes.POST("/:medicaoId/bloquear", handlers.BloquearMedicaoHandler)
			medicoes.POST("/:medicaoId/reabrir", handlers.ReabrirMedicaoHandler)
			medicoes.DELETE("/:medicaoId", handlers.DeleteMedicaoHandler)
			medicoes.GET("/:medicaoId/exportar", handlers.ExportarMedicaoHandler)
		}

		// --- ADITIVOS ---
		aditivos := apiGroup.Group("/aditivos")
		{
			aditivos.GET("/:aditivoId", handlers.GetAditivoHandler)
			aditivos.PUT("/:aditivoId/itens", handlers.AtualizarItensAditivoHandler)
			aditivos.POST("/:aditivoId/publicar", handlers.PublicarAditivoHandler)
			aditivos.POST("/:aditivoId/reabrir", handlers.ReabrirAditivoHandler)
			aditivos.DELETE("/:aditivoId", handlers.DeleteAditivoHandler)
		}

		// --- RDO ---
		apiGroup.POST("/rdos/:rdoId/aprovar", handlers.AprovarRdoHandler)

		// --- IMPORTAÇÕES DE AVANÇO ---
		apiGroup.DELETE("/importacoes/:importacaoId", handlers.DeleteImportacaoHandler)

		// --- USUÁRIOS ---
		apiGroup.PUT("/usuarios/:usuarioId", middleware.AdminMiddleware(), handlers.AtualizarUsuarioHandler)

		// --- VARREDURA DE ATRASO (gatilho do agendador) ---
		apiGroup.POST("/varreduras/atraso", middleware.AdminMiddleware(), handlers.VarreduraAtrasosHandler)
	}
}
