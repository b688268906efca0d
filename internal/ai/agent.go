package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-gas-agent/internal/database"
	"go-gas-agent/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers one assistant message. The model can call back into the
// ledger through the declared tools; anything else is answered from the
// prompt alone.
func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant for a gas cylinder distribution business.

	RULES:
	1. BALANCE: If a user asks about a customer's balance, dues or cylinders on hand,
	   call 'check_customer_balance' with the customer's name or phone. Do NOT guess.
	2. PRODUCTS: For cylinder types or prices, call 'check_products' and read the JSON.
	3. SALES: For sales, revenue or collections over a period, use 'get_sales_report'.
	4. Keep answers short and plain; no markdown symbols.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_customer_balance",
					Description: "Look up a customer by name or phone and get their current balance and gas cylinders on hand.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"query": {Type: genai.TypeString, Description: "Customer name or phone number"},
						},
						Required: []string{"query"},
					},
				},
				{
					Name:        "check_products",
					Description: "Get the full list of cylinder products with their base prices.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total credit, cash received and sale count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_customer_balance":
				return executeCustomerBalance(ctx, session, funcCall), nil
			case "check_products":
				return executeCheckProducts(ctx, session), nil
			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// --- TOOL EXECUTORS ---

func executeCustomerBalance(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	query, _ := funcCall.Args["query"].(string)

	var customer models.Customer
	err := database.DB.
		Where("name LIKE ? OR phone = ?", "%"+query+"%", query).
		First(&customer).Error

	response := map[string]interface{}{}
	if err != nil {
		response["status"] = "customer not found"
	} else {
		response["name"] = customer.Name
		response["route"] = customer.Route
		response["current_balance"] = customer.CurrentBalance
		response["gas_on_hand"] = customer.CurrentGasOnHand
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_customer_balance",
		Response: response,
	})
	if err != nil {
		return "Error answering balance query."
	}
	return printResponse(finalResp)
}

func executeCheckProducts(ctx context.Context, session *genai.ChatSession) string {
	var products []models.Product
	database.DB.Find(&products)

	type simpleProduct struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	var simpleList []simpleProduct
	for _, p := range products {
		simpleList = append(simpleList, simpleProduct{ID: p.ProductID, Name: p.Name, Price: p.Price})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_products",
		Response: map[string]interface{}{"products": string(jsonBytes)},
	})
	if err != nil {
		return "Error reading products."
	}
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	startStr, _ := funcCall.Args["start_date"].(string)
	endStr, _ := funcCall.Args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(database.DB, start, end, "")
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"total_credit":   report.TotalCredit,
			"total_received": report.TotalReceived,
			"sales_count":    report.TotalCount,
			"cylinders_sold": report.CylindersSold,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
