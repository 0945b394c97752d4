package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const docsHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Fraud Detection API</title>
    <meta name="description" content="Credit card fraud detection scoring API">
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        :root {
            --bg: #09090b;
            --bg-subtle: #18181b;
            --border: #27272a;
            --text: #fafafa;
            --text-secondary: #a1a1aa;
            --accent: #22c55e;
            --red: #ef4444;
            --blue: #3b82f6;
        }

        body {
            font-family: -apple-system, 'Segoe UI', sans-serif;
            background: var(--bg);
            color: var(--text);
            min-height: 100vh;
            font-size: 14px;
            line-height: 1.6;
        }

        .container { max-width: 860px; margin: 0 auto; padding: 48px 24px; }

        .header { margin-bottom: 32px; }
        .header h1 { font-size: 24px; font-weight: 600; }
        .header p { color: var(--text-secondary); margin-top: 6px; }

        .status {
            display: inline-block;
            margin-top: 12px;
            padding: 4px 12px;
            border-radius: 999px;
            font-size: 12px;
            border: 1px solid var(--border);
        }
        .status.ok { color: var(--accent); border-color: var(--accent); }
        .status.down { color: var(--red); border-color: var(--red); }

        .endpoint {
            background: var(--bg-subtle);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 16px 20px;
            margin: 12px 0;
        }
        .endpoint .method {
            display: inline-block;
            font-family: monospace;
            font-size: 12px;
            font-weight: 600;
            padding: 2px 8px;
            border-radius: 4px;
            margin-right: 8px;
            background: var(--blue);
            color: #fff;
        }
        .endpoint .method.post { background: var(--accent); color: #000; }
        .endpoint code { font-family: monospace; color: var(--text); }
        .endpoint p { color: var(--text-secondary); margin-top: 6px; font-size: 13px; }

        pre {
            background: #000;
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 16px;
            overflow-x: auto;
            font-size: 12px;
            margin-top: 8px;
            color: var(--text-secondary);
        }

        h2 { font-size: 16px; font-weight: 600; margin: 32px 0 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Fraud Detection API</h1>
            <p>Machine learning scoring for credit card transactions</p>
            <span class="status {{STATUS_CLASS}}">model: {{STATUS}}</span>
        </div>

        <h2>Endpoints</h2>

        <div class="endpoint">
            <span class="method post">POST</span><code>/predict</code>
            <p>Score a transaction. Body: JSON object with fields V1..V28 and Amount.</p>
            <pre>{
  "V1": -1.359807,
  "V2": -0.072781,
  ...
  "V28": -0.021053,
  "Amount": 149.62
}</pre>
        </div>

        <div class="endpoint">
            <span class="method">GET</span><code>/health</code>
            <p>Service and model health, including a model smoke test.</p>
        </div>

        <div class="endpoint">
            <span class="method">GET</span><code>/test</code> and <code>/test/fraud</code>
            <p>Self-test with fixed reference transactions (expected NORMAL and FRAUDE).</p>
        </div>

        <div class="endpoint">
            <span class="method">GET</span><code>/info</code>
            <p>Model type, version, feature layout, and training metrics.</p>
        </div>

        <div class="endpoint">
            <span class="method">GET</span><code>/ws</code>
            <p>WebSocket stream of prediction events for live monitoring.</p>
        </div>

        <div class="endpoint">
            <span class="method">GET</span><code>/metrics</code>
            <p>Prometheus metrics.</p>
        </div>
    </div>
</body>
</html>`

// docsHandler serves the documentation page at /
func (s *Server) docsHandler(c *gin.Context) {
	statusClass, status := "down", "not loaded"
	if s.scoringCtx.Ready() {
		statusClass, status = "ok", "loaded"
	}

	page := strings.Replace(docsHTML, "{{STATUS_CLASS}}", statusClass, 1)
	page = strings.Replace(page, "{{STATUS}}", status, 1)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
