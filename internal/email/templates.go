package email

import (
	"fmt"
	"strings"

	"partshelf/internal/catalog"
	"partshelf/internal/models"
)

func (s *Service) generateOrderSheetHTML(supplier *models.Supplier, items []*catalog.Item) string {
	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td>%s</td>
                <td class="qty">%d</td>
            </tr>`, item.ModelNumber, item.Description, item.DefaultOrderQuantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Order sheet - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .supplier {
            font-size: 24px;
            font-weight: bold;
            color: #334d66;
        }
        table {
            width: 100%%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        th, td {
            text-align: left;
            padding: 8px 12px;
            border-bottom: 1px solid #e9ecef;
        }
        th {
            color: #334d66;
        }
        .qty {
            text-align: right;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="supplier">%s</div>
            <div>Order sheet</div>
        </div>

        <table>
            <thead>
                <tr>
                    <th>Model number</th>
                    <th>Description</th>
                    <th class="qty">Quantity</th>
                </tr>
            </thead>
            <tbody>%s
            </tbody>
        </table>

        <div class="footer">
            <p>Generated by Partshelf</p>
        </div>
    </div>
</body>
</html>`, supplier.Name, supplier.Name, rows.String())
}

func (s *Service) generateOrderSheetText(supplier *models.Supplier, items []*catalog.Item) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Order sheet - %s\n\n", supplier.Name))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("%-20s  x%-4d  %s\n", item.ModelNumber, item.DefaultOrderQuantity, item.Description))
	}
	b.WriteString("\nGenerated by Partshelf\n")
	return b.String()
}
