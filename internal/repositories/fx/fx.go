package fx

import (
	"github.com/orgball2608/photoshare-client/internal/repositories/uploads"
	"go.uber.org/fx"
)

var Module = fx.Options(
	uploads.Module,
)
