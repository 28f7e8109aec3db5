package sales

import (
	"encoding/json"
	"net/http"
	"strconv"

	"LealCafeBackOffice/api"
	"LealCafeBackOffice/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MonthlyGoal is one branch's sales target for a month, joined with the actual
// loaded sales to compute progress.
type MonthlyGoal struct {
	ID           int             `json:"id"`
	Branch       string          `json:"sucursal"`
	Month        int             `json:"mes"`
	Year         int             `json:"anio"`
	TargetAmount decimal.Decimal `json:"meta_monto"`
	GoalType     string          `json:"tipo_meta"`
	Comments     string          `json:"comentarios"`
	ActualSales  decimal.Decimal `json:"ventas_reales"`
	Progress     decimal.Decimal `json:"porcentaje_cumplimiento"`
	Difference   decimal.Decimal `json:"diferencia"`
	Status       string          `json:"estado"`
}

const goalsQuery = `
	WITH ventas_periodo AS (
		SELECT sucursal, COALESCE(SUM(monto), 0) AS ventas_reales
		FROM "LealSilver".ventas_por_hora
		WHERE anio = $1 AND mes = $2
		GROUP BY sucursal
	)
	SELECT m.id, m.sucursal, m.mes, m.anio, m.meta_monto, m.tipo_meta,
		COALESCE(m.comentarios, ''),
		COALESCE(v.ventas_reales, 0),
		CASE WHEN m.meta_monto > 0
			THEN ROUND((COALESCE(v.ventas_reales, 0) / m.meta_monto * 100)::numeric, 2)
			ELSE 0 END,
		COALESCE(v.ventas_reales, 0) - m.meta_monto
	FROM "LealSilver".metas_mensuales m
	LEFT JOIN ventas_periodo v ON m.sucursal = v.sucursal
	WHERE m.anio = $1 AND m.mes = $2 AND m.activa = TRUE`

// GetMonthlyGoals handles GET /sales/goals?anio=&mes=[&sucursal=].
func GetMonthlyGoals(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, _ := strconv.Atoi(r.URL.Query().Get("anio"))
		month, _ := strconv.Atoi(r.URL.Query().Get("mes"))
		if year < 2020 || year > 2100 || month < 1 || month > 12 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrGoalPeriodRequired)
			return
		}

		query := goalsQuery
		args := []any{year, month}
		if branch := r.URL.Query().Get("sucursal"); branch != "" {
			query += " AND m.sucursal = $3"
			args = append(args, branch)
		}
		query += " ORDER BY m.sucursal"

		rows, err := pgxPool.Query(r.Context(), query, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed+err.Error())
			return
		}
		defer rows.Close()

		goals := []MonthlyGoal{}
		for rows.Next() {
			var g MonthlyGoal
			if err := rows.Scan(&g.ID, &g.Branch, &g.Month, &g.Year, &g.TargetAmount,
				&g.GoalType, &g.Comments, &g.ActualSales, &g.Progress, &g.Difference); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed+err.Error())
				return
			}
			g.Status = goalStatus(g.Progress)
			goals = append(goals, g)
		}
		api.RespondWithPayload(w, true, "", goals)
	}
}

// CreateMonthlyGoal handles POST /sales/goals.
func CreateMonthlyGoal(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID       string          `json:"user_id"`
			Branch       string          `json:"sucursal"`
			Month        int             `json:"mes"`
			Year         int             `json:"anio"`
			TargetAmount decimal.Decimal `json:"meta_monto"`
			GoalType     string          `json:"tipo_meta"`
			Comments     string          `json:"comentarios"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}
		createdBy := sessionName(req.UserID)
		if createdBy == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}
		if req.Branch == "" || req.Month < 1 || req.Month > 12 || req.Year < 2020 || req.Year > 2100 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrGoalPeriodRequired)
			return
		}
		if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrGoalAmountInvalid)
			return
		}
		if req.GoalType == "" {
			req.GoalType = "ventas"
		}

		var id int
		err := pgxPool.QueryRow(r.Context(), `
			INSERT INTO "LealSilver".metas_mensuales
				(sucursal, mes, anio, meta_monto, tipo_meta, comentarios, activa, created_by, fecha_creacion)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, now())
			RETURNING id`,
			req.Branch, req.Month, req.Year, req.TargetAmount.String(), req.GoalType, req.Comments, createdBy,
		).Scan(&id)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrGoalCreateFailed+": "+err.Error())
			return
		}

		api.LogInfo("meta creada id=%d sucursal=%s %d-%d por %s", id, req.Branch, req.Year, req.Month, createdBy)
		api.RespondWithPayload(w, true, "", map[string]interface{}{"id": id})
	}
}

// goalStatus buckets progress the way the dashboard gauges expect.
func goalStatus(progress decimal.Decimal) string {
	switch {
	case progress.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return "cumplido"
	case progress.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return "en_progreso"
	default:
		return "requiere_accion"
	}
}
