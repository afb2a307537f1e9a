package navpanel

import "github.com/goliatone/go-sensenav/pkg/model"

// Layout refs.
const (
	RefButtonLabel     = "props.buttonLabel"
	RefButtonStyle     = "props.buttonStyle"
	RefFullWidth       = "props.fullWidth"
	RefButtonAlignment = "props.buttonAlignment"
	RefButtonTextAlign = "props.buttonTextAlign"
	RefMultiLine       = "props.isButtonMultiLine"
	RefButtonIcon      = "props.buttonIcon"
)

func buttonLabel() *model.Field {
	return &model.Field{
		Key:          "label",
		Type:         model.FieldTypeString,
		Ref:          RefButtonLabel,
		Label:        "Label",
		Expression:   model.ExpressionOptional,
		DefaultValue: "My Button",
	}
}

func buttonStyle() *model.Field {
	return &model.Field{
		Key:          "style",
		Type:         model.FieldTypeString,
		Component:    model.ComponentDropdown,
		Ref:          RefButtonStyle,
		Label:        "Style",
		DefaultValue: "default",
		Options: []model.Option{
			{Value: "default", Label: "Default"},
			{Value: "primary", Label: "Primary"},
			{Value: "success", Label: "Success"},
			{Value: "info", Label: "Info"},
			{Value: "warning", Label: "Warning"},
			{Value: "danger", Label: "Danger"},
			{Value: "link", Label: "Link"},
		},
	}
}

func buttonWidth() *model.Field {
	return &model.Field{
		Key:       "buttonWidth",
		Type:      model.FieldTypeBoolean,
		Component: model.ComponentButtonGroup,
		Ref:       RefFullWidth,
		Label:     "Button Width",
		Options: []model.Option{
			{Value: true, Label: "Full Width", Tooltip: "Button has the same width as the element."},
			{Value: false, Label: "Auto Width", Tooltip: "Auto width depending on the label defined."},
		},
		DefaultValue: false,
	}
}

func buttonAlignment() *model.Field {
	return &model.Field{
		Key:          "buttonAlignment",
		Type:         model.FieldTypeString,
		Component:    model.ComponentDropdown,
		Ref:          RefButtonAlignment,
		DefaultValue: "top-left",
		Options: []model.Option{
			{Value: "top-left", Label: "Top left"},
			{Value: "top-middle", Label: "Top middle"},
			{Value: "top-right", Label: "Top right"},
			{Value: "left-middle", Label: "Left middle"},
			{Value: "centered", Label: "Centered"},
			{Value: "right-middle", Label: "Right middle"},
			{Value: "bottom-left", Label: "Bottom left"},
			{Value: "bottom-middle", Label: "Bottom middle"},
			{Value: "bottom-right", Label: "Bottom right"},
		},
	}
}

// buttonTextAlign only applies to full width buttons.
func buttonTextAlign() *model.Field {
	return &model.Field{
		Key:          "buttonTextAlign",
		Type:         model.FieldTypeString,
		Component:    model.ComponentDropdown,
		Ref:          RefButtonTextAlign,
		Label:        "Label Alignment",
		DefaultValue: "left",
		Options: []model.Option{
			{Value: "center", Label: "Center"},
			{Value: "left", Label: "Left"},
			{Value: "right", Label: "Right"},
		},
		Show: RefFullWidth + " == true",
	}
}

func buttonMultiLine() *model.Field {
	return &model.Field{
		Key:          "buttonMultiLine",
		Type:         model.FieldTypeBoolean,
		Ref:          RefMultiLine,
		Label:        "Multiline Label",
		DefaultValue: false,
	}
}

func buttonIcons(icons []model.Option) *model.Field {
	return &model.Field{
		Key:       "buttonIcons",
		Type:      model.FieldTypeString,
		Component: model.ComponentDropdown,
		Ref:       RefButtonIcon,
		Label:     "Icon",
		Options:   icons,
	}
}

func layoutSection(icons []model.Option) *model.Field {
	return model.Section("layout", "Layout",
		buttonLabel(),
		buttonStyle(),
		buttonWidth(),
		buttonAlignment(),
		buttonTextAlign(),
		buttonMultiLine(),
		buttonIcons(icons),
	)
}
