package navpanel

import (
	"context"

	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/visibility"
)

// RefActionItems is the layout ref of the action list. Item refs below are
// relative to an item.
const (
	RefActionItems      = "props.actionItems"
	RefActionType       = "actionType"
	RefSelectedBookmark = "selectedBookmark"
	RefSelectedField    = "selectedField"
	RefField            = "field"
	RefValue            = "value"
	RefValueDesc        = "valueDesc"
	RefVariable         = "variable"
	RefSoftLock         = "softLock"
)

// FieldByExpression is the field list entry that switches to an expression
// defined field name.
const FieldByExpression = "by-expr"

// Action types.
const (
	ActionNone                 = "none"
	ActionApplyBookmark        = "applyBookmark"
	ActionClearAll             = "clearAll"
	ActionClearOther           = "clearOther"
	ActionForward              = "forward"
	ActionBack                 = "back"
	ActionClearField           = "clearField"
	ActionLockAll              = "lockAll"
	ActionLockField            = "lockField"
	ActionSelectAll            = "selectAll"
	ActionSelectAlternative    = "selectAlternative"
	ActionSelectAndLockField   = "selectAndLockField"
	ActionSelectExcluded       = "selectExcluded"
	ActionSelectField          = "selectField"
	ActionSelectPossible       = "selectPossible"
	ActionSelectValues         = "selectValues"
	ActionSetVariable          = "setVariable"
	ActionToggleSelect         = "toggleSelect"
	ActionUnlockAll            = "unlockAll"
	ActionUnlockField          = "unlockField"
	ActionUnlockAllAndClearAll = "unlockAllAndClearAll"
)

// Action groups.
const (
	GroupBookmark  = "bookmark"
	GroupSelection = "selection"
	GroupVariables = "variables"
)

// ActionOptions lists the action types offered for each action item.
var ActionOptions = []model.Option{
	{Value: ActionApplyBookmark, Label: "Apply Bookmark", Group: GroupBookmark},
	{Value: ActionClearAll, Label: "Clear All Selections", Group: GroupSelection},
	{Value: ActionClearOther, Label: "Clear Other Fields", Group: GroupSelection},
	{Value: ActionForward, Label: "Forward (in your Selections)", Group: GroupSelection},
	{Value: ActionBack, Label: "Back (in your Selections)", Group: GroupSelection},
	{Value: ActionClearField, Label: "Clear Selection in Field", Group: GroupSelection},
	{Value: ActionLockAll, Label: "Lock All", Group: GroupSelection},
	{Value: ActionLockField, Label: "Lock Field", Group: GroupSelection},
	{Value: ActionSelectAll, Label: "Select All Values in Field", Group: GroupSelection},
	{Value: ActionSelectAlternative, Label: "Select Alternatives", Group: GroupSelection},
	{Value: ActionSelectAndLockField, Label: "Select and Lock in Field", Group: GroupSelection},
	{Value: ActionSelectExcluded, Label: "Select Excluded", Group: GroupSelection},
	{Value: ActionSelectField, Label: "Select Value in Field", Group: GroupSelection},
	{Value: ActionSelectPossible, Label: "Select Possible Values in Field", Group: GroupSelection},
	{Value: ActionSelectValues, Label: "Select Multiple Values in Field", Group: GroupSelection},
	{Value: ActionSetVariable, Label: "Set Variable Value", Group: GroupVariables},
	{Value: ActionToggleSelect, Label: "Toggle Field Selection", Group: GroupSelection},
	{Value: ActionUnlockAll, Label: "Unlock All", Group: GroupSelection},
	{Value: ActionUnlockField, Label: "Unlock Field", Group: GroupSelection},
	{Value: ActionUnlockAllAndClearAll, Label: "Unlock All and Clear All Fields", Group: GroupSelection},
}

// Enabler lists gate the secondary fields of an action item by action type.
// A new action type has to be added to every list whose field it needs.
var (
	BookmarkEnabler = []string{ActionApplyBookmark}
	FieldEnabler    = []string{
		ActionClearField, ActionClearOther, ActionLockField, ActionSelectAll,
		ActionSelectAlternative, ActionSelectExcluded, ActionSelectField,
		ActionSelectPossible, ActionSelectValues, ActionSelectAndLockField,
		ActionToggleSelect, ActionUnlockField,
	}
	ValueEnabler = []string{
		ActionSelectField, ActionSelectValues, ActionSetVariable,
		ActionSelectAndLockField, ActionToggleSelect,
	}
	ValueDescEnabler       = []string{ActionSelectValues}
	VariableEnabler        = []string{ActionSetVariable}
	OverwriteLockedEnabler = []string{
		ActionClearOther, ActionSelectAll, ActionSelectAlternative,
		ActionSelectExcluded, ActionSelectPossible, ActionToggleSelect,
	}
)

// ActionGroup is the selection/bookmark/variables group selector. It is not
// mounted in the item list; action types carry their group instead.
func ActionGroup() *model.Field {
	return &model.Field{
		Key:          "actionGroup",
		Type:         model.FieldTypeString,
		Component:    model.ComponentDropdown,
		Ref:          "actionGroup",
		Label:        "Selection Action Type",
		DefaultValue: GroupSelection,
		Options: []model.Option{
			{Value: GroupSelection, Label: "Selection"},
			{Value: GroupBookmark, Label: "Bookmark"},
			{Value: GroupVariables, Label: "Variables"},
		},
	}
}

// ActionTitle is the title of an action item: the label of its action type,
// or the raw action type when it is unknown.
func ActionTitle(item map[string]any) string {
	actionType, _ := item[RefActionType].(string)
	for _, option := range ActionOptions {
		if option.Value == actionType {
			return option.Label
		}
	}
	return actionType
}

func actionTypeIn(enabler []string) string {
	return visibility.In("item."+RefActionType, enabler...)
}

// fieldListSource prepends the "define by expression" entry to the host's
// field list. A failing lookup fails the whole list.
func fieldListSource(lister helper.Lister) model.OptionSource {
	return func(ctx context.Context) ([]model.Option, error) {
		fields, err := lister.FieldList(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]model.Option, 0, len(fields)+1)
		out = append(out, model.Option{Value: FieldByExpression, Label: ">> Define field by expression <<"})
		return append(out, fields...), nil
	}
}

func actionsList(lister helper.Lister) *model.Field {
	return &model.Field{
		Key:            "actionsList",
		Type:           model.FieldTypeArray,
		Ref:            RefActionItems,
		Label:          "Actions",
		AllowAdd:       true,
		AllowRemove:    true,
		AddTranslation: "Add Item",
		Grouped:        true,
		ItemTitleRef:   RefActionType,
		ItemTitle:      ActionTitle,
		Items: []*model.Field{
			{
				Key:          "actionType",
				Type:         model.FieldTypeString,
				Component:    model.ComponentDropdown,
				Ref:          RefActionType,
				DefaultValue: ActionNone,
				Options:      append([]model.Option{}, ActionOptions...),
			},
			{
				Key:          "bookmarkList",
				Type:         model.FieldTypeString,
				Component:    model.ComponentDropdown,
				Ref:          RefSelectedBookmark,
				Label:        "Select bookmark",
				Expression:   model.ExpressionOptional,
				OptionSource: lister.BookmarkList,
				Show:         actionTypeIn(BookmarkEnabler),
			},
			{
				Key:          "fieldList",
				Type:         model.FieldTypeString,
				Component:    model.ComponentDropdown,
				Ref:          RefSelectedField,
				Label:        "Select field",
				DefaultValue: "",
				OptionSource: fieldListSource(lister),
				Show:         actionTypeIn(FieldEnabler),
			},
			{
				Key:        "field",
				Type:       model.FieldTypeString,
				Ref:        RefField,
				Label:      "Field",
				Expression: model.ExpressionOptional,
				Show: visibility.And(
					actionTypeIn(FieldEnabler),
					visibility.Equals("item."+RefSelectedField, FieldByExpression),
				),
			},
			{
				Key:        "value",
				Type:       model.FieldTypeString,
				Ref:        RefValue,
				Label:      "Value",
				Expression: model.ExpressionOptional,
				Show:       actionTypeIn(ValueEnabler),
			},
			{
				Key:       "valueDesc",
				Type:      model.FieldTypeText,
				Component: model.ComponentText,
				Ref:       RefValueDesc,
				Label:     "Define multiple values separated with a semi-colon (;).",
				Show:      actionTypeIn(ValueDescEnabler),
			},
			{
				Key:        "variable",
				Type:       model.FieldTypeString,
				Ref:        RefVariable,
				Label:      "Variable Name",
				Expression: model.ExpressionOptional,
				Show:       actionTypeIn(VariableEnabler),
			},
			{
				Key:          "overwriteLocked",
				Type:         model.FieldTypeBoolean,
				Ref:          RefSoftLock,
				Label:        "Overwrite locked selections",
				DefaultValue: false,
				Show:         actionTypeIn(OverwriteLockedEnabler),
			},
		},
	}
}
