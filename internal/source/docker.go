package source

import (
	"context"
	"fmt"
)

// DockerSource reads logs from a Docker container via `docker logs`.
type DockerSource struct {
	container string
	since     string
	exec      *ExecSource
}

// NewDockerSource creates a source for a container's logs. since is passed
// to `docker logs --since` when non-empty, e.g. "1h".
func NewDockerSource(container, since string) *DockerSource {
	args := []string{"logs"}
	if since != "" {
		args = append(args, "--since", since)
	}
	args = append(args, container)

	return &DockerSource{
		container: container,
		since:     since,
		exec:      NewExecSource("docker", args),
	}
}

// Name returns the source identifier.
func (s *DockerSource) Name() string {
	return fmt.Sprintf("docker:%s", s.container)
}

// Load executes `docker logs` and returns its output. Docker writes the
// container's stdout and stderr to the matching streams; both are kept.
func (s *DockerSource) Load(ctx context.Context) (string, error) {
	text, err := s.exec.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("docker logs %s: %w (is docker running?)", s.container, err)
	}
	return text, nil
}
