package command

var handlers = map[string]handler{
	// Layout
	"align":            cmdAlign,
	"cycle_size":       cmdCycleSize,
	"fit_size":         cmdFitSize,
	"focus":            cmdFocus,
	"fullscreen":       cmdFullscreen,
	"layout_transpose": cmdLayoutTranspose,
	"move":             cmdMove,
	"pin":              cmdPin,
	"scale_workspace":  cmdScaleWorkspace,
	"set_mode":         cmdSetMode,
	"set_size":         cmdSetSize,
	"workspace":        cmdWorkspace,

	// Marks
	"jump":      cmdJump,
	"selection": cmdSelection,
	"trail":     cmdTrail,
	"trailmark": cmdTrailmark,

	// Options
	"animations":             cmdAnimations,
	"jump_labels_background": cmdJumpLabelsBackground,
	"jump_labels_color":      cmdJumpLabelsColor,
	"jump_labels_keys":       cmdJumpLabelsKeys,
	"jump_labels_scale":      cmdJumpLabelsScale,
	"layout_default_height":  cmdLayoutDefaultHeight,
	"layout_default_width":   cmdLayoutDefaultWidth,
	"layout_heights":         cmdLayoutHeights,
	"layout_widths":          cmdLayoutWidths,
	"workspace_layout":       cmdWorkspaceLayout,

	// Misc
	"debug":  cmdDebug,
	"reload": cmdReload,
}
