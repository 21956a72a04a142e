// internal/llm/prompt.go
package llm

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders 12345.6 as "12,345.60".
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

func BuildMatchPrompt(componentsJSON, configText string) string {
	return `
Task: you are a PC hardware configuration analyst. Analyse the configuration
string supplied by the user and, for every hardware category (cpu, ram, gpu, ...),
pick the single best matching component from the "available components" list.

Rules:
1. Only use component "id" values that appear in the available components list.
2. If a category is not mentioned in the user string or cannot be matched, leave it out.
3. Output MUST be a single JSON object: keys are category names, values are the chosen component ids.
4. NO explanations. NO markdown. NO extra text.

Available components (JSON):
` + componentsJSON + `

User configuration string:
"` + strings.TrimSpace(configText) + `"
`
}

func BuildQuotePrompt(configText string, total float64) string {
	return fmt.Sprintf(`
Act as a professional PC hardware sales consultant. Using the configuration the
customer has settled on and the total price below, write a short, professional
and friendly quotation.

Use Markdown with these parts:
1. A professional title, e.g. "PC Build Quotation".
2. A "Configuration" section that reproduces the customer's final configuration.
3. A "Cost Summary" section that clearly states the final total.
4. A few friendly notes on warranty, after-sales service or delivery time.
5. A closing line thanking the customer and inviting them to confirm.

Customer final configuration:
---
%s
---

Final total: ¥%s
`, strings.TrimSpace(configText), FormatMoney(total))
}
