package repository

import (
	"context"

	"github.com/bhel/hrm/internal/model"
)

const listBenefitPlans = `
SELECT id, plan_name, provider, description, cost_per_month
FROM benefit_plans ORDER BY plan_name`

func (q *Queries) ListBenefitPlans(ctx context.Context) ([]model.BenefitPlan, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return nil, err
	}
	defer q.db.Release(conn)

	rows, err := conn.QueryContext(ctx, listBenefitPlans)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []model.BenefitPlan
	for rows.Next() {
		var p model.BenefitPlan
		if err := rows.Scan(&p.ID, &p.PlanName, &p.Provider, &p.Description, &p.CostPerMonth); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

const createBenefitPlan = `
INSERT INTO benefit_plans (plan_name, provider, description, cost_per_month)
VALUES (?, ?, ?, ?)`

func (q *Queries) CreateBenefitPlan(ctx context.Context, p model.BenefitPlan) (int, error) {
	conn, err := q.db.Connection(ctx)
	if err != nil {
		return 0, err
	}
	defer q.db.Release(conn)

	res, err := conn.ExecContext(ctx, createBenefitPlan,
		p.PlanName, p.Provider, p.Description, p.CostPerMonth)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}
