// Package app turns classified view gestures into table state changes.
//
// InteractionController subscribes to every card view and to the popup
// menu. It owns the selection, the registered stacks and the open menu
// context, and redraws views after each change. TableService deals a
// layout and wires a controller to freshly built views.
package app
