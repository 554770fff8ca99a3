// Package config holds softaudit's runtime configuration.
//
// Configuration comes from three layers: built-in defaults, an optional
// .softaudit YAML file (current directory, then home directory), and CLI
// flags, with later layers overriding earlier ones. The Config struct is
// populated once in the command layer and passed explicitly through the
// application; there is no ambient global state.
package config
