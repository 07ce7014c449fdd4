package capabilities

import "os/exec"

// Which returns the path to a binary on PATH (i.e. lsblk -> /usr/bin/lsblk).
func Which(binary string) (string, error) {
	return exec.LookPath(binary)
}

// IsCommandAvailable reports whether a binary is on PATH, i.e. 'powershell'.
func IsCommandAvailable(binary string) bool {
	_, err := exec.LookPath(binary)

	return err == nil
}

// Resolve maps each binary to its path on PATH, or to "" when it is missing.
func Resolve(binaries []string) map[string]string {
	paths := make(map[string]string, len(binaries))
	for _, bin := range binaries {
		path, _ := Which(bin)
		paths[bin] = path
	}
	return paths
}
