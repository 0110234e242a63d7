package bot

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/th3funto/ninja-store/internal/pricing"
	"github.com/th3funto/ninja-store/internal/session"
)

// MESSAGE RENDERING

const chartWidth = 20

func renderPanel(sess session.Session) string {
	b := sess.Breakdown()
	in := sess.Inputs

	var sb strings.Builder
	sb.WriteString("<b>🥷 Ninja Store</b> · Calculadora de Precificação\n\n")

	sb.WriteString("<b>📦 Dados do Produto</b>\n")
	fmt.Fprintf(&sb, "Item: %s\n", html.EscapeString(sess.ProductName))
	fmt.Fprintf(&sb, "Preço Dólar (USD): $ %s\n", html.EscapeString(in.ForeignPrice))
	fmt.Fprintf(&sb, "Cotação (BRL): R$ %s\n", html.EscapeString(in.ExchangeRate))
	fmt.Fprintf(&sb, "Taxa Importador: %s%%\n", html.EscapeString(in.ImportFeePct))
	fmt.Fprintf(&sb, "Minha Margem: %s%%\n\n", html.EscapeString(in.MarginPct))

	sb.WriteString("<b>📈 Resultado</b>\n")
	fmt.Fprintf(&sb, "Custo Produto (R$): %s\n", pricing.FormatBRL(b.BaseCost))
	fmt.Fprintf(&sb, "Importação (%s%%): + %s\n", html.EscapeString(in.ImportFeePct), pricing.FormatBRL(b.ImportFee))
	fmt.Fprintf(&sb, "Custo Total: <b>%s</b>\n", pricing.FormatBRL(b.TotalCost))
	fmt.Fprintf(&sb, "Margem (aprox. %s%%): + %s\n\n", html.EscapeString(in.MarginPct), pricing.FormatBRL(b.Profit))

	sb.WriteString("<pre>")
	sb.WriteString(renderChart(pricing.Composition(b)))
	sb.WriteString("</pre>\n")

	mode := "📏 Exato"
	if b.Rounded {
		mode = "🪄 Arredondado"
	}
	fmt.Fprintf(&sb, "<b>Preço Final (À Vista): %s</b>\n%s", pricing.FormatBRL(b.FinalCashPrice), mode)

	return sb.String()
}

// renderChart draws the cost composition as one bar per slice.
func renderChart(slices []pricing.Slice) string {
	lines := make([]string, 0, len(slices))
	for _, s := range slices {
		filled := int(math.Round(s.Share * chartWidth))
		filled = max(0, min(chartWidth, filled))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", chartWidth-filled)
		lines = append(lines, fmt.Sprintf("%-12s %s %5.1f%%", s.Name, bar, s.Share*100))
	}
	return strings.Join(lines, "\n")
}

func renderInstallments(cash float64, profile pricing.FeeProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>💳 Simulação de Parcelamento</b> · %s\n", html.EscapeString(profile.Name))
	sb.WriteString("Valores calculados com repasse de juros (Inverso)\n")

	sb.WriteString("<pre>")
	fmt.Fprintf(&sb, "%-11s %7s %14s %14s\n", "Parcelas", "Taxa", "Valor Parc.", "Total")
	for _, row := range pricing.Project(cash, profile) {
		fmt.Fprintf(&sb, "%-11s %7s %14s %14s\n",
			row.Label,
			pricing.FormatRate(row.Rate),
			pricing.FormatBRL(row.PerInstallment),
			pricing.FormatBRL(row.TotalCharge))
	}
	sb.WriteString("</pre>\n")

	fmt.Fprintf(&sb, "Pix (0%%): <b>%s</b>", pricing.FormatBRL(cash))
	return sb.String()
}

func renderPrompt(sess session.Session, step session.Step) string {
	switch step {
	case session.StepProductName:
		return fmt.Sprintf("Digite o item / descrição (atual: %s).\nEx: Playstation 5", sess.ProductName)
	case session.StepUSDPrice:
		return fmt.Sprintf("Digite o preço em dólar (USD). Atual: $ %s", sess.Inputs.ForeignPrice)
	case session.StepExchangeRate:
		return fmt.Sprintf("Digite a cotação do dólar em reais. Atual: R$ %s", sess.Inputs.ExchangeRate)
	case session.StepImportFee:
		return fmt.Sprintf("Digite a taxa do importador em %% sobre o valor convertido. Atual: %s%%", sess.Inputs.ImportFeePct)
	case session.StepMargin:
		return fmt.Sprintf("Digite sua margem de lucro em %% sobre o custo total. Atual: %s%%", sess.Inputs.MarginPct)
	default:
		return ""
	}
}

const helpText = `Comandos disponíveis:
/start - Reiniciar a calculadora
/painel - Mostrar o painel
/produto <nome> - Item / descrição
/preco <usd> - Preço em dólar
/cotacao <brl> - Cotação do dólar
/taxa <pct> - Taxa do importador
/margem <pct> - Minha margem
/arredondar - Liga/desliga o arredondamento de 5 em 5
/cartao visa|elo - Tabela de taxas do cartão
/parcelas - Simulação de parcelamento
/oferta - Texto da oferta para copiar
/cancel - Cancelar a edição atual

Valores em branco ou inválidos contam como 0.`
