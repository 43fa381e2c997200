package web

const skillMD = `# Robinclaw - Hyperliquid Trading API

Read-only market data over HTTP. Trading itself runs through the CLI or the
Go client, never through this web surface.

**Base URL:** ` + "`https://robinclaw.xyz`" + `

## Endpoints (no auth required)

### GET /api/markets
List all available trading pairs.

` + "```bash" + `
curl https://robinclaw.xyz/api/markets
` + "```" + `

Response:
` + "```json" + `
{
  "markets": [
    {"name": "BTC", "szDecimals": 5, "maxLeverage": 50},
    {"name": "ETH", "szDecimals": 4, "maxLeverage": 50}
  ]
}
` + "```" + `

### GET /api/prices
Get current mid prices for all markets.

` + "```bash" + `
curl https://robinclaw.xyz/api/prices
` + "```" + `

Response:
` + "```json" + `
{"BTC": "97500.0", "ETH": "3250.5", "SOL": "198.2"}
` + "```" + `

### GET /api/orderbook?symbol=BTC&depth=10
L2 orderbook snapshot for one market.

### GET /api/candles?symbol=BTC&interval=1h&limit=100
Recent OHLCV bars. Intervals: 1m, 5m, 15m, 1h, 4h, 1d.

### GET /health
Liveness check. Returns ` + "`{\"status\": \"ok\", \"service\": \"robinclaw\"}`" + `.

## Rules & Limits

- **Rate limits**: Max 10 requests/second per client
- All prices are decimal strings; never parse them into floats if you care
  about the money

## Trading

Order placement, leverage, and position management are exposed through the
` + "`robinclaw`" + ` CLI:

` + "```bash" + `
robinclaw prices
robinclaw buy ETH 0.1
robinclaw stop-loss ETH 3000
robinclaw close ETH
` + "```" + `

## Links

- Hyperliquid: https://hyperliquid.xyz
- GitHub: https://github.com/robinclaw/robinclaw
`

const homepageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Robinclaw - Hyperliquid Trading</title>
    <style>
        :root {
            --bg: #0a0a0f;
            --surface: #12121a;
            --primary: #f7931a;
            --accent: #00d4aa;
            --text: #e8e8e8;
            --muted: #888;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: 'SF Mono', 'Monaco', 'Inconsolata', monospace;
            background: var(--bg);
            color: var(--text);
            min-height: 100vh;
            display: flex;
            flex-direction: column;
            align-items: center;
            padding: 4rem 2rem;
            line-height: 1.6;
        }
        .container { max-width: 720px; width: 100%; }
        h1 {
            font-size: 3rem;
            font-weight: 700;
            letter-spacing: -0.02em;
            margin-bottom: 0.5rem;
        }
        h1 span.claw { color: var(--primary); }
        .tagline {
            font-size: 1.25rem;
            color: var(--muted);
            margin-bottom: 3rem;
        }
        .section {
            background: var(--surface);
            border: 1px solid #222;
            border-radius: 8px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .section h2 {
            color: var(--accent);
            font-size: 1rem;
            text-transform: uppercase;
            letter-spacing: 0.1em;
            margin-bottom: 1rem;
        }
        .section p { color: var(--muted); }
        code {
            background: #1a1a24;
            padding: 0.2em 0.4em;
            border-radius: 4px;
            font-size: 0.9em;
            color: var(--primary);
        }
        pre {
            background: #1a1a24;
            padding: 1rem;
            border-radius: 6px;
            overflow-x: auto;
            margin-top: 0.5rem;
        }
        pre code { padding: 0; background: none; }
        a { color: var(--accent); }
        footer {
            margin-top: 3rem;
            color: var(--muted);
            font-size: 0.85rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Robin<span class="claw">claw</span></h1>
        <p class="tagline">Perpetual futures trading on Hyperliquid.</p>

        <div class="section">
            <h2>What is this?</h2>
            <p>Robinclaw is a trading client for <a href="https://hyperliquid.xyz" target="_blank">Hyperliquid</a>
            perpetual futures: a Go library, a CLI, and this read-only market data API.</p>
            <br>
            <p>No paper trading. Real funds, real markets, real consequences.</p>
        </div>

        <div class="section">
            <h2>Market Data</h2>
            <pre><code># Get prices
curl https://robinclaw.xyz/api/prices

# List markets
curl https://robinclaw.xyz/api/markets

# Orderbook snapshot
curl "https://robinclaw.xyz/api/orderbook?symbol=BTC&depth=10"</code></pre>
        </div>

        <div class="section">
            <h2>For Agents</h2>
            <p>Machine-readable API documentation:</p>
            <pre><code>GET /skill.md</code></pre>
        </div>

        <footer>
            <p><a href="https://github.com/robinclaw/robinclaw">GitHub</a></p>
        </footer>
    </div>
</body>
</html>
`
