package view

import (
	"citizens-link/internal/global/jwt"
	"citizens-link/internal/global/middleware"
	"citizens-link/internal/global/response"
	"citizens-link/internal/leaderboard"
	"citizens-link/internal/model"
	"citizens-link/internal/module/stats"
	"citizens-link/internal/ranking"
	"citizens-link/internal/store"
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type Resp struct {
	State
	Data any `json:"data"`
}

type HomeData struct {
	Activities []model.ActivityType `json:"activities"`
	Preset     *model.ActivityType  `json:"preset_activity,omitempty"`
}

type GuideData struct {
	Activities []model.ActivityType `json:"activities"`
	Tiers      []ranking.Tier       `json:"tiers"`
}

type RankingData struct {
	List  []leaderboard.Row `json:"list"`
	Total int               `json:"total"`
}

type PointsData struct {
	RankingData
	Tiers  []ranking.Tier    `json:"tiers"`
	Search *stats.SearchResp `json:"search,omitempty"`
}

type AdminData struct {
	Pending    []model.ActivityReport `json:"pending"`
	Activities []model.ActivityType   `json:"activities"`
}

// Render 返回页面状态和该页面需要的数据
func Render(c *gin.Context) {
	state := Parse(c.Query("mode"), c.Query("admin"), c.Query("activity"))
	if state.View == ViewAdmin {
		payload, err := middleware.Authenticate(c, middleware.RoleStaff)
		if err != nil {
			response.Fail(c, err)
			return
		}
		jwt.SetUserPayload(c, payload)
	}

	data, err := Load(c.Request.Context(), store.Default, state, c.Query("name"))
	if err != nil {
		log.Error("加载页面数据失败", "error", err, "view", state.View)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, Resp{State: state, Data: data})
}

// Load 按页面读取数据，admin 页面并发读取待审核报告和活动列表
func Load(ctx context.Context, s store.Store, state State, name string) (any, error) {
	switch state.View {
	case ViewGuide:
		activities, err := s.ListActivityTypes(ctx)
		if err != nil {
			return nil, err
		}
		return GuideData{Activities: activities, Tiers: leaderboard.Tiers().Tiers()}, nil
	case ViewVision:
		return s.ListActivityTypes(ctx)
	case ViewRanking:
		return loadRanking(ctx, s)
	case ViewPoints:
		entries, err := leaderboard.Rankings(ctx, s)
		if err != nil {
			return nil, err
		}
		data := PointsData{
			RankingData: RankingData{List: leaderboard.Rows(entries, leaderboard.Tiers()), Total: len(entries)},
			Tiers:       leaderboard.Tiers().Tiers(),
		}
		if name != "" {
			found := stats.Lookup(entries, name, ranking.Search)
			data.Search = &found
		}
		return data, nil
	case ViewAdmin:
		var data AdminData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			pending, err := s.ListPendingReports(gctx)
			data.Pending = pending
			return err
		})
		g.Go(func() error {
			activities, err := s.ListActivityTypes(gctx)
			data.Activities = activities
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return data, nil
	default:
		activities, err := s.ListActivityTypes(ctx)
		if err != nil {
			return nil, err
		}
		data := HomeData{Activities: activities}
		for i := range activities {
			if activities[i].ID == state.Preset {
				data.Preset = &activities[i]
				break
			}
		}
		return data, nil
	}
}

func loadRanking(ctx context.Context, s store.Store) (RankingData, error) {
	entries, err := leaderboard.Rankings(ctx, s)
	if err != nil {
		return RankingData{}, err
	}
	return RankingData{List: leaderboard.Rows(entries, leaderboard.Tiers()), Total: len(entries)}, nil
}
