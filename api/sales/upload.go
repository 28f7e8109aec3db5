package sales

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"LealCafeBackOffice/api"
	"LealCafeBackOffice/api/auth"
	"LealCafeBackOffice/api/constants"
	"LealCafeBackOffice/api/utils"
	"LealCafeBackOffice/internal/checksum"
	"LealCafeBackOffice/internal/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var monthNames = []string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// sessionName resolves the logged-in user's display name, used as the audit
// created_by value on every persisted row.
func sessionName(userID string) string {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s.Name
		}
	}
	return ""
}

// UploadPreview handles POST /sales/upload-preview: parses the uploaded workbook
// and returns the extracted sections for review. Nothing is persisted here.
func UploadPreview(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMultipartParse)
			return
		}

		userID := r.FormValue(constants.KeyUserID)
		if userID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		if sessionName(userID) == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		mode := r.FormValue("modo_carga")
		if mode == "" {
			mode = ModeDaily
		}
		period, err := periodFromForm(r, mode)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".xlsx" && ext != ".xls" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUnsupportedFileType)
			return
		}

		raw, err := io.ReadAll(file)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoFileUploaded)
			return
		}
		fingerprint := checksum.Sum(raw)

		grid, err := LoadSummaryGrid(bytes.NewReader(raw), header.Filename)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		data, err := ExtractSummary(grid, header.Filename)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		api.LogInfo("archivo %s procesado: %d filas, %d columnas, modo %s",
			header.Filename, data.Metadata.Rows, data.Metadata.Columns, mode)

		metadata := map[string]interface{}{
			"archivo":       data.Metadata.FileName,
			"fecha_carga":   data.Metadata.LoadedAt.Format(constants.DateTimeFormat),
			"total_ventas":  data.Metadata.TotalSales,
			"filas":         data.Metadata.Rows,
			"columnas":      data.Metadata.Columns,
			"modo_carga":    mode,
			"huella_sha256": fingerprint,
			"sucursal":      period.Branch,
			"anio":          period.Year,
			"mes":           period.Month,
		}
		if mode == ModeDaily {
			metadata["dia"] = period.Day
		} else {
			metadata["dias_en_mes"] = period.TotalDays
		}

		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"message":  "Archivo procesado correctamente",
			"batch_id": uuid.New().String(),
			"metadata": metadata,
			"resumen":  data.SectionCounts(),
			"preview_data": map[string]interface{}{
				TableHourly:    head(data.HourlySales, 5),
				TableDish:      head(data.DishSales, 10),
				TableGroup:     head(data.GroupSales, 5),
				TableGroupType: data.GroupTypes,
				TablePayment:   data.PaymentTypes,
				TableServer:    data.ServerSales,
				TableCashier:   data.CashierSales,
				TableModifier:  head(data.Modifiers, 10),
			},
			"warnings":     data.Warnings,
			TableHourly:    data.HourlySales,
			TableDish:      data.DishSales,
			TableGroup:     data.GroupSales,
			TableGroupType: data.GroupTypes,
			TablePayment:   data.PaymentTypes,
			TableServer:    data.ServerSales,
			TableCashier:   data.CashierSales,
			TableModifier:  data.Modifiers,
		})
	}
}

type confirmMetadata struct {
	Mode      string `json:"modo_carga"`
	Branch    string `json:"sucursal"`
	Year      int    `json:"anio"`
	Month     int    `json:"mes"`
	Day       int    `json:"dia"`
	TotalDays int    `json:"dias_en_mes"`
}

type confirmRequest struct {
	UserID       string            `json:"user_id"`
	Metadata     confirmMetadata   `json:"metadata"`
	HourlySales  []HourlySale      `json:"ventas_por_hora"`
	DishSales    []DishSale        `json:"ventas_por_platillo"`
	GroupSales   []GroupSale       `json:"ventas_por_grupo"`
	GroupTypes   []GroupTypeSale   `json:"ventas_por_tipo_grupo"`
	PaymentTypes []PaymentTypeSale `json:"ventas_por_tipo_pago"`
	ServerSales  []ServerSale      `json:"ventas_por_usuario"`
	CashierSales []CashierSale     `json:"ventas_por_cajero"`
	Modifiers    []ModifierSale    `json:"ventas_por_modificador"`
}

// ConfirmSave handles POST /sales/confirm-save: the caller sends back the
// previewed sections plus period metadata, the duplicate guard validates the
// target period is free, and the bulk writer commits all eight tables at once.
func ConfirmSave(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
			return
		}

		createdBy := sessionName(req.UserID)
		if createdBy == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		mode := req.Metadata.Mode
		if mode == "" {
			mode = ModeDaily
		}
		period := Period{
			Branch:    req.Metadata.Branch,
			Year:      req.Metadata.Year,
			Month:     req.Metadata.Month,
			Day:       req.Metadata.Day,
			TotalDays: req.Metadata.TotalDays,
		}
		if err := period.Validate(mode); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		data := &SummaryData{
			HourlySales:  req.HourlySales,
			DishSales:    req.DishSales,
			GroupSales:   req.GroupSales,
			GroupTypes:   req.GroupTypes,
			PaymentTypes: req.PaymentTypes,
			ServerSales:  req.ServerSales,
			CashierSales: req.CashierSales,
			Modifiers:    req.Modifiers,
		}

		// Advisory pre-check for a friendly message; the writer re-checks inside
		// its transaction before touching any table.
		var counts map[string]int
		var err error
		if mode == ModeDaily {
			exists, gerr := ExistsForDay(ctx, pgxPool, period.Branch, period.Year, period.Month, period.Day)
			if gerr != nil {
				api.RespondWithError(w, http.StatusInternalServerError, gerr.Error())
				return
			}
			if exists {
				api.RespondWithError(w, http.StatusBadRequest, duplicateDayMessage(period))
				return
			}
			api.LogInfo("guardado DIARIO: sucursal=%s fecha=%d-%d-%d usuario=%s",
				period.Branch, period.Year, period.Month, period.Day, createdBy)
			counts, err = InsertDailySales(ctx, pgxPool, data, period, createdBy)
		} else {
			exists, gerr := ExistsForMonth(ctx, pgxPool, period.Branch, period.Year, period.Month)
			if gerr != nil {
				api.RespondWithError(w, http.StatusInternalServerError, gerr.Error())
				return
			}
			if exists {
				api.RespondWithError(w, http.StatusBadRequest, duplicateMonthMessage(period))
				return
			}
			api.LogInfo("guardado MENSUAL: sucursal=%s periodo=%d-%d dias=%d usuario=%s",
				period.Branch, period.Year, period.Month, period.TotalDays, createdBy)
			counts, err = InsertMonthlySales(ctx, pgxPool, data, period, createdBy)
		}
		if err != nil {
			if errors.Is(err, ErrDuplicatePeriod) {
				api.RespondWithError(w, http.StatusConflict, err.Error())
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		api.LogInfo("guardado exitoso: %v", counts)
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Datos guardados exitosamente",
			"resumen": counts,
		})
	}
}

// RecentSales handles GET /sales/recent: the latest loaded hourly rows, paged
// for the back-office landing table.
func RecentSales(pgxPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		total, err := utils.CountTotal(r.Context(), pgxPool,
			`SELECT COUNT(*) FROM "LealSilver".ventas_por_hora`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed+err.Error())
			return
		}
		pagination.SetPaginationStats(total)

		rows, err := pgxPool.Query(r.Context(), `
			SELECT sucursal, anio, mes, dia, hora, monto, created_by
			FROM "LealSilver".ventas_por_hora
			ORDER BY anio DESC, mes DESC, dia DESC, hora DESC
			LIMIT $1 OFFSET $2`, pagination.Limit, pagination.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed+err.Error())
			return
		}
		defer rows.Close()

		out := []map[string]interface{}{}
		for rows.Next() {
			var branch, hour, createdBy string
			var year, month, day int
			var amount decimal.Decimal
			if err := rows.Scan(&branch, &year, &month, &day, &hour, &amount, &createdBy); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed+err.Error())
				return
			}
			out = append(out, map[string]interface{}{
				"sucursal": branch, "anio": year, "mes": month, "dia": day,
				"hora": hour, "monto": amount, "created_by": createdBy,
			})
		}
		w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":    true,
			"data":       out,
			"pagination": pagination,
		})
	}
}

func periodFromForm(r *http.Request, mode string) (Period, error) {
	p := Period{Branch: r.FormValue("sucursal")}
	p.Year, _ = strconv.Atoi(r.FormValue("anio"))
	p.Month, _ = strconv.Atoi(r.FormValue("mes"))
	if mode == ModeDaily {
		p.Day, _ = strconv.Atoi(r.FormValue("dia"))
	} else if p.Year >= 2020 && p.Month >= 1 && p.Month <= 12 {
		p.TotalDays = DaysInMonth(p.Year, p.Month)
	}
	if err := p.Validate(mode); err != nil {
		return Period{}, err
	}
	return p, nil
}

func duplicateDayMessage(p Period) string {
	return "Ya existen datos para " + p.Branch + " en " + strconv.Itoa(p.Day) + " de " +
		monthNames[p.Month] + " " + strconv.Itoa(p.Year) + ". No se puede volver a cargar el mismo día."
}

func duplicateMonthMessage(p Period) string {
	return "Ya existen datos para algunos días de " + monthNames[p.Month] + " " +
		strconv.Itoa(p.Year) + " en " + p.Branch + ". No se puede cargar el mes completo."
}

// head returns at most n leading elements, for preview payloads.
func head[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
