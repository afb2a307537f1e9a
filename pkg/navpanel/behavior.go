package navpanel

import (
	"github.com/goliatone/go-sensenav/pkg/helper"
	"github.com/goliatone/go-sensenav/pkg/model"
	"github.com/goliatone/go-sensenav/pkg/visibility"
)

// Navigation behaviour refs.
const (
	RefNavigationAction = "props.navigationAction"
	RefSheetID          = "props.sheetId"
	RefSelectedApp      = "props.selectedApp"
	RefSelectedSheet    = "props.selectedSheet"
	RefSelectedStory    = "props.selectedStory"
	RefWebsiteURL       = "props.websiteUrl"
)

// Navigation actions.
const (
	NavNone          = "none"
	NavNextSheet     = "nextSheet"
	NavPrevSheet     = "prevSheet"
	NavGotoSheet     = "gotoSheet"
	NavGotoSheetByID = "gotoSheetById"
	NavGotoStory     = "gotoStory"
	NavOpenWebsite   = "openWebsite"
	NavSwitchToEdit  = "switchToEdit"
	NavOpenApp       = "openApp"
)

// NavigationOptions lists the offered navigation actions. NavOpenApp is not
// offered, so the app list it gates is never shown by the stock panel.
var NavigationOptions = []model.Option{
	{Value: NavNone, Label: "None"},
	{Value: NavNextSheet, Label: "Go to next sheet"},
	{Value: NavPrevSheet, Label: "Go to previous sheet"},
	{Value: NavGotoSheet, Label: "Go to a specific sheet"},
	{Value: NavGotoSheetByID, Label: "Go to a sheet (defined by Sheet Id)"},
	{Value: NavGotoStory, Label: "Go to a story"},
	{Value: NavOpenWebsite, Label: "Open website"},
	{Value: NavSwitchToEdit, Label: "Switch to Edit Mode"},
}

func navigationIs(action string) string {
	return visibility.Equals(RefNavigationAction, action)
}

func behaviorSection(lister helper.Lister) *model.Field {
	return model.Section("behavior", "Navigation Behavior",
		&model.Field{
			Key:          "action",
			Type:         model.FieldTypeString,
			Component:    model.ComponentDropdown,
			Ref:          RefNavigationAction,
			Label:        "Navigation Action",
			DefaultValue: NavNextSheet,
			Options:      append([]model.Option{}, NavigationOptions...),
		},
		&model.Field{
			Key:        "sheetId",
			Type:       model.FieldTypeString,
			Ref:        RefSheetID,
			Label:      "Sheet ID",
			Expression: model.ExpressionOptional,
			Show:       navigationIs(NavGotoSheetByID),
		},
		&model.Field{
			Key:          "sheetList",
			Type:         model.FieldTypeString,
			Component:    model.ComponentDropdown,
			Ref:          RefSelectedSheet,
			Label:        "Select Sheet",
			OptionSource: lister.SheetList,
			Show:         navigationIs(NavGotoSheet),
		},
		&model.Field{
			Key:          "storyList",
			Type:         model.FieldTypeString,
			Component:    model.ComponentDropdown,
			Ref:          RefSelectedStory,
			Label:        "Select Story",
			OptionSource: lister.StoryList,
			Show:         navigationIs(NavGotoStory),
		},
		&model.Field{
			Key:        "websiteUrl",
			Type:       model.FieldTypeString,
			Ref:        RefWebsiteURL,
			Label:      "Website Url:",
			Expression: model.ExpressionOptional,
			Show:       navigationIs(NavOpenWebsite),
		},
		&model.Field{
			Key:          "appList",
			Type:         model.FieldTypeString,
			Component:    model.ComponentDropdown,
			Ref:          RefSelectedApp,
			Label:        "Select App",
			OptionSource: lister.AppList,
			Show:         navigationIs(NavOpenApp),
		},
	)
}
