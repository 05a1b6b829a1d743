package httputil

import "github.com/gin-gonic/gin"

// WriteError はProblemDetailをGinレスポンスとして書き込む。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, problem)
}

// AbortWithError はProblemDetailをGinレスポンスとして書き込み、リクエスト処理を中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// AbortWithErr はエラーを対応するProblemDetailに変換して処理を中断する。
// instance にはリクエストパスが設定される。
func AbortWithErr(c *gin.Context, err error) {
	AbortWithError(c, FromError(err).WithInstance(c.Request.URL.Path))
}

// NoRoute は未定義パスへのリクエストに404を返すハンドラ。
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, NotFound("no such endpoint").WithInstance(c.Request.URL.Path))
	}
}
