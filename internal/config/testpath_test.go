package config

// SetTestConfigPath points ConfigPath at path.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath undoes SetTestConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }
