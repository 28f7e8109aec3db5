package sales

// tableRows is one destination table's worth of fully materialized rows, ready
// for parameterized INSERT (daily) or COPY (monthly).
type tableRows struct {
	table string
	cols  []string
	rows  [][]any
}

var (
	hourlyCols = []string{"sucursal", "anio", "mes", "dia", "hora", "monto", "created_by"}
	dishCols   = []string{"sucursal", "anio", "mes", "dia", "clave_platillo", "nombre_platillo",
		"grupo", "cantidad", "subtotal", "porcentaje", "created_by"}
	groupCols     = []string{"sucursal", "anio", "mes", "dia", "grupo", "subtotal", "created_by"}
	groupTypeCols = []string{"sucursal", "anio", "mes", "dia", "grupo", "cantidad", "subtotal",
		"iva", "total", "porcentaje", "created_by"}
	paymentCols = []string{"sucursal", "anio", "mes", "dia", "tipo_pago", "total", "porcentaje", "created_by"}
	serverCols  = []string{"sucursal", "anio", "mes", "dia", "usuario", "subtotal", "iva", "total",
		"num_cuentas", "ticket_promedio", "num_personas", "promedio_por_persona", "porcentaje", "created_by"}
	cashierCols = []string{"sucursal", "anio", "mes", "dia", "cajero", "subtotal", "iva", "total",
		"cantidad_transacciones", "porcentaje", "created_by"}
	modifierCols = []string{"sucursal", "anio", "mes", "dia", "grupo", "clave_platillo", "nombre_platillo",
		"tamano", "cantidad", "subtotal", "created_by"}
)

// dailySections materializes every section for a single target day, one row per
// extracted record.
func dailySections(data *SummaryData, p Period, createdBy string) []tableRows {
	key := func(day int) []any { return []any{p.Branch, p.Year, p.Month, day} }

	hourly := make([][]any, 0, len(data.HourlySales))
	for _, v := range data.HourlySales {
		hourly = append(hourly, append(key(p.Day), v.Hour, v.Amount.String(), createdBy))
	}
	dishes := make([][]any, 0, len(data.DishSales))
	for _, v := range data.DishSales {
		dishes = append(dishes, append(key(p.Day),
			v.DishCode, v.DishName, v.Group, v.Quantity, v.Subtotal.String(), v.Percentage.String(), createdBy))
	}
	groups := make([][]any, 0, len(data.GroupSales))
	for _, v := range data.GroupSales {
		groups = append(groups, append(key(p.Day), v.Group, v.Subtotal.String(), createdBy))
	}
	groupTypes := make([][]any, 0, len(data.GroupTypes))
	for _, v := range data.GroupTypes {
		groupTypes = append(groupTypes, append(key(p.Day),
			v.Group, v.Quantity, v.Subtotal.String(), v.Tax.String(), v.Total.String(), v.Percentage.String(), createdBy))
	}
	payments := make([][]any, 0, len(data.PaymentTypes))
	for _, v := range data.PaymentTypes {
		payments = append(payments, append(key(p.Day),
			v.PaymentType, v.Total.String(), v.Percentage.String(), createdBy))
	}
	servers := make([][]any, 0, len(data.ServerSales))
	for _, v := range data.ServerSales {
		servers = append(servers, append(key(p.Day),
			v.Server, v.Subtotal.String(), v.Tax.String(), v.Total.String(), v.AccountCount,
			v.AverageTicket.String(), v.GuestCount, v.AveragePerGuest.String(), v.Percentage.String(), createdBy))
	}
	cashiers := make([][]any, 0, len(data.CashierSales))
	for _, v := range data.CashierSales {
		cashiers = append(cashiers, append(key(p.Day),
			v.Cashier, v.Subtotal.String(), v.Tax.String(), v.Total.String(), v.TransactionCount, v.Percentage.String(), createdBy))
	}
	modifiers := make([][]any, 0, len(data.Modifiers))
	for _, v := range data.Modifiers {
		modifiers = append(modifiers, append(key(p.Day),
			v.Group, v.DishCode, v.DishName, sizeValue(v.Size), v.Quantity, v.Subtotal.String(), createdBy))
	}

	return []tableRows{
		{TableHourly, hourlyCols, hourly},
		{TableDish, dishCols, dishes},
		{TableGroup, groupCols, groups},
		{TableGroupType, groupTypeCols, groupTypes},
		{TablePayment, paymentCols, payments},
		{TableServer, serverCols, servers},
		{TableCashier, cashierCols, cashiers},
		{TableModifier, modifierCols, modifiers},
	}
}

// monthlySections expands every section across days 1..p.TotalDays. Quantities
// go through DistributeQuantity so each record's per-day values re-sum to the
// original exactly; money goes through DivideAmount; percentages describe the
// whole month and are copied unchanged onto every day.
func monthlySections(data *SummaryData, p Period, createdBy string) []tableRows {
	days := p.TotalDays
	key := func(day int) []any { return []any{p.Branch, p.Year, p.Month, day} }

	hourly := make([][]any, 0, days*len(data.HourlySales))
	dishes := make([][]any, 0, days*len(data.DishSales))
	groups := make([][]any, 0, days*len(data.GroupSales))
	groupTypes := make([][]any, 0, days*len(data.GroupTypes))
	payments := make([][]any, 0, days*len(data.PaymentTypes))
	servers := make([][]any, 0, days*len(data.ServerSales))
	cashiers := make([][]any, 0, days*len(data.CashierSales))
	modifiers := make([][]any, 0, days*len(data.Modifiers))

	for day := 1; day <= days; day++ {
		for _, v := range data.HourlySales {
			hourly = append(hourly, append(key(day),
				v.Hour, DivideAmount(v.Amount, days).String(), createdBy))
		}
		for _, v := range data.DishSales {
			dishes = append(dishes, append(key(day),
				v.DishCode, v.DishName, v.Group,
				DistributeQuantity(v.Quantity, day, days),
				DivideAmount(v.Subtotal, days).String(), v.Percentage.String(), createdBy))
		}
		for _, v := range data.GroupSales {
			groups = append(groups, append(key(day),
				v.Group, DivideAmount(v.Subtotal, days).String(), createdBy))
		}
		for _, v := range data.GroupTypes {
			groupTypes = append(groupTypes, append(key(day),
				v.Group, DistributeQuantity(v.Quantity, day, days),
				DivideAmount(v.Subtotal, days).String(), DivideAmount(v.Tax, days).String(),
				DivideAmount(v.Total, days).String(), v.Percentage.String(), createdBy))
		}
		for _, v := range data.PaymentTypes {
			payments = append(payments, append(key(day),
				v.PaymentType, DivideAmount(v.Total, days).String(), v.Percentage.String(), createdBy))
		}
		for _, v := range data.ServerSales {
			servers = append(servers, append(key(day),
				v.Server, DivideAmount(v.Subtotal, days).String(), DivideAmount(v.Tax, days).String(),
				DivideAmount(v.Total, days).String(),
				DistributeQuantity(v.AccountCount, day, days),
				DivideAmount(v.AverageTicket, days).String(),
				DistributeQuantity(v.GuestCount, day, days),
				DivideAmount(v.AveragePerGuest, days).String(), v.Percentage.String(), createdBy))
		}
		for _, v := range data.CashierSales {
			cashiers = append(cashiers, append(key(day),
				v.Cashier, DivideAmount(v.Subtotal, days).String(), DivideAmount(v.Tax, days).String(),
				DivideAmount(v.Total, days).String(),
				DistributeQuantity(v.TransactionCount, day, days), v.Percentage.String(), createdBy))
		}
		for _, v := range data.Modifiers {
			modifiers = append(modifiers, append(key(day),
				v.Group, v.DishCode, v.DishName, sizeValue(v.Size),
				DistributeQuantity(v.Quantity, day, days),
				DivideAmount(v.Subtotal, days).String(), createdBy))
		}
	}

	return []tableRows{
		{TableHourly, hourlyCols, hourly},
		{TableDish, dishCols, dishes},
		{TableGroup, groupCols, groups},
		{TableGroupType, groupTypeCols, groupTypes},
		{TablePayment, paymentCols, payments},
		{TableServer, serverCols, servers},
		{TableCashier, cashierCols, cashiers},
		{TableModifier, modifierCols, modifiers},
	}
}

// sizeValue maps an absent modifier size to SQL NULL.
func sizeValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
