package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/cache"
	"github.com/goldenglowitsolutions/scheduling-service/internal/ratelimit"
	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

type HandlerManager struct {
	studentHandler   *StudentHandler
	courseHandler    *CourseHandler
	exportHandler    *ExportHandler
	rateLimitHandler *RateLimitHandler
	healthHandler    *HealthHandler
	bucket           *ratelimit.Bucket
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	cacheManager *cache.CacheManager,
	bucket *ratelimit.Bucket,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		studentHandler:   NewStudentHandler(serviceManager.GetStudentService(), logger),
		courseHandler:    NewCourseHandler(serviceManager.GetCourseService(), logger),
		exportHandler:    NewExportHandler(serviceManager.GetExportService(), logger),
		rateLimitHandler: NewRateLimitHandler(bucket, logger),
		healthHandler:    NewHealthHandler(serviceManager, cacheManager, logger),
		bucket:           bucket,
	}
}

// SetupRoutes sets up all API routes. Health and limiter status live outside
// the rate-limited group so they stay reachable under load.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Check)
	router.GET("/rate-limit/info", hm.rateLimitHandler.GetInfo)

	api := router.Group("/api/v1")
	api.Use(ratelimit.Middleware(hm.bucket))
	{
		students := api.Group("/students")
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.GetAllStudents)
			students.GET("/paged", hm.studentHandler.GetStudentsPaged)
			students.GET("/search", hm.studentHandler.SearchStudents)
			students.GET("/export", hm.exportHandler.ExportStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)

			students.GET("/:id/courses", hm.studentHandler.GetStudentCourses)
			students.POST("/:id/courses", hm.studentHandler.AssignCourses)
			students.DELETE("/:id/courses/:code", hm.studentHandler.RemoveCourse)
		}

		courses := api.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.GetAllCourses)
			courses.GET("/paged", hm.courseHandler.GetCoursesPaged)
			courses.GET("/search", hm.courseHandler.SearchCourses)
			courses.GET("/export", hm.exportHandler.ExportCourses)
			courses.GET("/students/:studentId", hm.courseHandler.GetCoursesByStudent)
			courses.GET("/not-taken/:studentId", hm.courseHandler.GetCoursesNotTaken)
			courses.GET("/:code", hm.courseHandler.GetCourse)
			courses.PUT("/:code", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:code", hm.courseHandler.DeleteCourse)

			courses.GET("/:code/students", hm.courseHandler.GetCourseStudents)
		}
	}
}
