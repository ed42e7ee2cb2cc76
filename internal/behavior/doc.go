// Package behavior defines how key bindings are actuated.
//
// A Binding names a behavior and carries up to two parameters. When the
// binding's key position is pressed or released, the Registry looks up the
// named Behavior and invokes it with a BindingEvent describing where and
// when the transition happened.
//
// The package ships the key_press behavior, which raises a
// KeycodeStateChanged event on the bus for the keycode in Param1. Other
// behaviors (such as the caps-word style lock behaviors in the capslock
// subpackage) register themselves under their configured names.
package behavior
