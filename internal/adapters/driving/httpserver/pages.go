package httpserver

import (
	"fmt"
	"html"
)

// pageShell wraps page content in the shared dashboard styling.
func pageShell(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Connect - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
            box-shadow: 0 4px 24px rgba(0,0,0,0.08);
            max-width: 480px;
        }
        h1 {
            color: #333F50;
            margin: 0 0 8px 0;
            font-size: 24px;
            font-weight: 600;
        }
        p {
            color: #7B8088;
            margin: 0 0 8px 0;
            font-size: 16px;
        }
        code {
            background: #F0F1F3;
            border-radius: 4px;
            padding: 2px 6px;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="container">
%s
    </div>
</body>
</html>`, html.EscapeString(title), content)
}

// successPage notifies an opener window (the dashboard tab) that the flow
// completed, so it can refresh its status view, then invites the user to
// close the popup. The connector name is a validated slug, safe to embed.
func successPage(connector string) string {
	content := fmt.Sprintf(`        <h1>Authorization successful</h1>
        <p>%s is now connected.</p>
        <p>You can close this window and return to the dashboard.</p>
        <script>
            if (window.opener) {
                window.opener.postMessage(
                    { type: "connect:oauth", connector: %q, status: "success" },
                    window.location.origin
                );
            }
        </script>`, html.EscapeString(connector), connector)
	return pageShell("Authorization Complete", content)
}

// errorPage renders a browser-facing failure with its reason.
func errorPage(title, connector, detail string) string {
	content := fmt.Sprintf(`        <h1>%s</h1>
        <p>Connector: %s</p>`, html.EscapeString(title), html.EscapeString(connector))
	if detail != "" {
		content += fmt.Sprintf("\n        <p>%s</p>", html.EscapeString(detail))
	}
	content += fmt.Sprintf(`
        <script>
            if (window.opener) {
                window.opener.postMessage(
                    { type: "connect:oauth", connector: %q, status: "error" },
                    window.location.origin
                );
            }
        </script>`, connector)
	return pageShell("Authorization Error", content)
}

// explainerPage tells the user why OAuth cannot start for a connector.
func explainerPage(connector string) string {
	escaped := html.EscapeString(connector)
	content := fmt.Sprintf(`        <h1>OAuth not available</h1>
        <p>The %s connector has no OAuth client configured.</p>
        <p>Set <code>%s</code> and <code>%s</code> in your environment, or save
        <code>clientId</code> / <code>clientSecret</code> with
        <code>connect config set-key %s --field clientId</code>, then try again.</p>`,
		escaped, envName(connector, "CLIENT_ID"), envName(connector, "CLIENT_SECRET"), escaped)
	return pageShell("OAuth Not Available", content)
}
