package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides flags that can be shared by
// several programs. Each shared flag is registered the first time its
// accessor is called.
type FlagSet struct {
	*flag.FlagSet
	json   *bool
	config *string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo, -parseonly or -history in JSON")
		fs.json = &json
	}
	return fs.json
}

// Config returns a pointer to the value of the -config flag.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", "",
			"Path to the config file; defaults to $ZI_CONFIG or the user config directory")
		fs.config = &config
	}
	return fs.config
}
