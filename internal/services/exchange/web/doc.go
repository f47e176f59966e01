// Package web serves the browser pages of the exchange: the selection form,
// the reveal after submitting a name and the admin diagnostic panel.
package web
