// Package ports declares the contracts between the controller and its
// views, menus and layout sources.
package ports
