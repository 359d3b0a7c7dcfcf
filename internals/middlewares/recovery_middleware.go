package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic jadi 500. Stack trace dicatat dengan
// request id supaya panic bisa dilacak ke request yang memicunya.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("[PANIC] reqid=%v %s %s: %v\n%s",
				c.Locals("reqid"), c.Method(), c.Path(), e, debug.Stack())
		},
	})
}
