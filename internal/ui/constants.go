// Package ui provides the terminal panels: sidebar, conversation view,
// header, footer, and modal dialogs.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the message composer
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the composer
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the composer (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// CounterHeight is the line inside the composer showing the character count
	CounterHeight = 1

	// InputTotalHeight is the total height of the composer area (textarea + counter + borders)
	InputTotalHeight = TextareaHeight + CounterHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Input limits
const (
	// MessageCharLimit is the maximum length of an outgoing message
	MessageCharLimit = 2000

	// SearchCharLimit is the character limit for the sidebar search box
	SearchCharLimit = 100
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 100

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)
