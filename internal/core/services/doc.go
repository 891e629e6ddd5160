// Package services implements the driving port interfaces.
// Services contain the core auth logic and orchestrate calls to driven
// ports (adapters). No service speaks HTTP; the dashboard façade is the
// single place protocol failures become status codes.
package services
