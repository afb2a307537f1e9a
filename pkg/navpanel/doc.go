// Package navpanel declares the property panel of the navigation button
// extension: button layout, a list of selection/bookmark/variable actions
// run before navigating, and the navigation behaviour itself.
//
// The tree is built once by New and handed to the host. Visibility rules
// reference layout values (props.*) and, for action items, the enclosing item
// (item.*). The secondary fields of an action item are gated by the enabler
// lists, which must be kept in sync with ActionOptions by hand.
package navpanel
